//go:build darwin && cgo

package windowcapture

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <dlfcn.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    void*  data;
    size_t size;
    int    height;
    size_t bytesPerRow;
} WindowImage;

typedef struct {
    uint32_t id;
    char     owner[256];
    char     title[256];
} WindowEntry;

// CGWindowListCreateImage is missing from the macOS 15 SDK headers but
// still exported by the CoreGraphics dylib.
typedef CGImageRef (*CGWindowListCreateImageFunc)(
    CGRect screenBounds,
    uint32_t listOption,
    uint32_t windowID,
    uint32_t imageOption
);

static CGWindowListCreateImageFunc getCGWindowListCreateImage(void) {
    static CGWindowListCreateImageFunc fn = NULL;
    if (!fn) {
        fn = (CGWindowListCreateImageFunc)dlsym(RTLD_DEFAULT, "CGWindowListCreateImage");
    }
    return fn;
}

static int hasCreateImage(void) {
    return getCGWindowListCreateImage() != NULL;
}

WindowImage captureWindow(uint32_t windowID, uint32_t listOption, uint32_t imageOption) {
    WindowImage result = {0};

    CGWindowListCreateImageFunc fn = getCGWindowListCreateImage();
    if (!fn) {
        return result;
    }

    CGImageRef image = fn(CGRectNull, listOption, windowID, imageOption);
    if (!image) {
        return result;
    }

    CFDataRef data = CGDataProviderCopyData(CGImageGetDataProvider(image));
    if (!data) {
        CGImageRelease(image);
        return result;
    }

    result.height      = (int)CGImageGetHeight(image);
    result.bytesPerRow = CGImageGetBytesPerRow(image);
    result.size        = (size_t)CFDataGetLength(data);
    result.data        = malloc(result.size);
    if (result.data) {
        memcpy(result.data, CFDataGetBytePtr(data), result.size);
    } else {
        result.size = 0;
    }

    CFRelease(data);
    CGImageRelease(image);
    return result;
}

int listWindows(WindowEntry* out, int max) {
    CFArrayRef list = CGWindowListCopyWindowInfo(
        kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
        kCGNullWindowID);
    if (!list) {
        return 0;
    }

    int n = 0;
    CFIndex count = CFArrayGetCount(list);
    for (CFIndex i = 0; i < count && n < max; i++) {
        CFDictionaryRef info = (CFDictionaryRef)CFArrayGetValueAtIndex(list, i);

        int layer = 0;
        CFNumberRef layerRef = (CFNumberRef)CFDictionaryGetValue(info, kCGWindowLayer);
        if (layerRef) {
            CFNumberGetValue(layerRef, kCFNumberIntType, &layer);
        }
        if (layer != 0) {
            continue;
        }

        CFNumberRef idRef = (CFNumberRef)CFDictionaryGetValue(info, kCGWindowNumber);
        if (!idRef) {
            continue;
        }
        CFNumberGetValue(idRef, kCFNumberSInt32Type, &out[n].id);

        out[n].owner[0] = 0;
        out[n].title[0] = 0;
        CFStringRef owner = (CFStringRef)CFDictionaryGetValue(info, kCGWindowOwnerName);
        if (owner) {
            CFStringGetCString(owner, out[n].owner, sizeof(out[n].owner), kCFStringEncodingUTF8);
        }
        CFStringRef title = (CFStringRef)CFDictionaryGetValue(info, kCGWindowName);
        if (title) {
            CFStringGetCString(title, out[n].title, sizeof(out[n].title), kCFStringEncodingUTF8);
        }
        n++;
    }

    CFRelease(list);
    return n;
}

void freeWindowImage(void* data) {
    free(data);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/Jamyw7g/wingif/pkg/ports"
)

const (
	listsDisplays = false
	maxWindows    = 512
)

// Capture grabs the window with CoreGraphics window number handle.
func (s *Source) Capture(handle ports.WindowHandle) (*ports.PixelBuffer, error) {
	if C.hasCreateImage() == 0 {
		return nil, fmt.Errorf("%w: CGWindowListCreateImage unavailable", ports.ErrCapture)
	}

	img := C.captureWindow(C.uint32_t(handle), C.uint32_t(captureListOptions), C.uint32_t(captureImageOptions))
	if img.data == nil {
		return nil, fmt.Errorf("%w: window %d is not capturable", ports.ErrCapture, handle)
	}
	defer C.freeWindowImage(img.data)

	data := unsafe.Slice((*byte)(img.data), int(img.size))
	return fromBGRA(data, int(img.bytesPerRow), int(img.height))
}

// ListWindows lists on-screen application windows.
func (s *Source) ListWindows() ([]ports.WindowInfo, error) {
	entries := make([]C.WindowEntry, maxWindows)
	n := int(C.listWindows(&entries[0], C.int(maxWindows)))

	windows := make([]ports.WindowInfo, 0, n)
	for _, e := range entries[:n] {
		windows = append(windows, ports.WindowInfo{
			Handle: ports.WindowHandle(e.id),
			Owner:  C.GoString(&e.owner[0]),
			Title:  C.GoString(&e.title[0]),
		})
	}
	return windows, nil
}

var (
	_ ports.FrameSource  = (*Source)(nil)
	_ ports.WindowLister = (*Source)(nil)
)
