package seed

import (
	"bytes"
	"testing"
)

func TestSerializers(t *testing.T) {
	records := []Record{
		{ID: int64(3), CreatedDate: int64(1714554000000), EmotionID: 1, Content: "Hello"},
		{ID: "draft", CreatedDate: int64(0), EmotionID: 5, Content: "multi\nline"},
	}

	serializers := DefaultSerializers()

	tests := []struct {
		ext string
	}{
		{".json"},
		{".yaml"},
		{".yml"},
	}

	for _, tc := range tests {
		t.Run(tc.ext, func(t *testing.T) {
			s := serializers[tc.ext]

			data, err := s.Serialize(records)
			if err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}

			parsed, err := s.Parse(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if len(parsed) != len(records) {
				t.Fatalf("expected %d records, got %d", len(records), len(parsed))
			}
			for i := range records {
				if parsed[i].Content != records[i].Content {
					t.Errorf("record %d content mismatch. Want %q, got %q", i, records[i].Content, parsed[i].Content)
				}
				if parsed[i].EmotionID != records[i].EmotionID {
					t.Errorf("record %d emotion mismatch. Want %d, got %d", i, records[i].EmotionID, parsed[i].EmotionID)
				}
			}
		})
	}
}

func TestSerializers_InvalidInput(t *testing.T) {
	for ext, s := range DefaultSerializers() {
		t.Run(ext, func(t *testing.T) {
			if _, err := s.Parse(bytes.NewReader([]byte("{not: [valid"))); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
