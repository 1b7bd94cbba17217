package deepgram

import (
	"encoding/json"
	"testing"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/rest/interfaces"
)

func TestFirstTranscript(t *testing.T) {
	raw := []byte(`{"results":{"channels":[{"alternatives":[{"transcript":"¿Cuántos camellos tenéis?","confidence":0.98}]}]}}`)

	var response api.PreRecordedResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		t.Fatalf("expected response to unmarshal, got %v", err)
	}

	transcript, err := firstTranscript(&response)
	if err != nil {
		t.Fatalf("expected transcript, got error %v", err)
	}
	if transcript != "¿Cuántos camellos tenéis?" {
		t.Fatalf("expected transcript of first alternative, got %q", transcript)
	}
}

func TestFirstTranscriptErrorsWithoutAlternatives(t *testing.T) {
	if _, err := firstTranscript(&api.PreRecordedResponse{}); err == nil {
		t.Fatalf("expected error for empty response")
	}
}
