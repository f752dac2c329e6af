package summarizer

import (
	"encoding/json"
	"testing"
)

func TestJSONFormatter(t *testing.T) {
	out := JSONFormatter.Format(fullSummary())

	var decoded Summary
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if decoded.Session.ID != fullSummary().Session.ID {
		t.Errorf("unexpected session id %q", decoded.Session.ID)
	}
	if decoded.Output.VideoCodec != "h264" || decoded.Capture.Discarded != 2 {
		t.Errorf("unexpected content %+v", decoded)
	}
}

func TestJSONFormatter_OmitsEmptyVideo(t *testing.T) {
	s := fullSummary()
	s.Output.VideoPath = ""
	s.Output.VideoSize = 0
	s.Output.VideoCodec = ""

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(JSONFormatter.Format(s)), &raw); err != nil {
		t.Fatal(err)
	}
	var output map[string]any
	if err := json.Unmarshal(raw["output"], &output); err != nil {
		t.Fatalf("output section: %v", err)
	}
	if _, ok := output["videoPath"]; ok {
		t.Error("videoPath should be omitted without a video")
	}
	if _, ok := output["videoCodec"]; ok {
		t.Error("videoCodec should be omitted without a video")
	}
	if _, ok := raw["generatedAt"]; !ok {
		t.Error("generatedAt should be present")
	}
	if _, ok := output["gifPath"]; !ok {
		t.Error("gifPath should always be present")
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path     string
		wantJSON bool
	}{
		{"summary.json", true},
		{"out/SUMMARY.JSON", true},
		{"summary.md", false},
		{"summary", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, isMarkdown := ForPath(tt.path).(*MarkdownFormatter)
			if isMarkdown == tt.wantJSON {
				t.Errorf("ForPath(%q): markdown = %v, want JSON %v", tt.path, isMarkdown, tt.wantJSON)
			}
		})
	}
}
