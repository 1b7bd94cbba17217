package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/magoslive/show-core/core/audio"
	"github.com/magoslive/show-core/core/texttospeech"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Synthesize generates speech for the full text in one shot: it opens a
// speak stream, sends the text, collects every audio frame until the
// stream is flushed, persists the result through the sink and computes
// the playback duration from the raw audio length.
func (c *SynthesisClient) Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesizeOption) (*texttospeech.Speech, error) {
	ctx, span := tracer.Start(ctx, "synthesize speech")
	defer span.End()

	options := texttospeech.SynthesizeOptions{
		Voice:        string(c.voice),
		EncodingInfo: c.encodingInfo,
	}
	for _, opt := range opts {
		opt(&options)
	}
	span.SetAttributes(
		attribute.String("request.voice", options.Voice),
		attribute.Int("request.text_length", len(text)),
	)

	conn, err := connectWebsocket(deepgramVoice(options.Voice), options.EncodingInfo)
	if err != nil {
		err = fmt.Errorf("failed to open websocket: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer conn.Close()

	for _, msg := range []map[string]string{
		{"type": "Speak", "text": text},
		{"type": "Flush"},
	} {
		if err := conn.WriteJSON(msg); err != nil {
			err = fmt.Errorf("failed to send %s message: %w", msg["type"], err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	data, err := collectAudio(ctx, conn)
	if err != nil {
		err = fmt.Errorf("failed to collect audio: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("response.audio_bytes", len(data)))

	durationMS := options.EncodingInfo.Duration(len(data)).Milliseconds()

	wav, err := audio.WrapWAV(options.EncodingInfo, data)
	if err != nil {
		return nil, fmt.Errorf("failed to containerize audio: %w", err)
	}

	audioURL, err := c.sink.StoreAudio(uuid.NewString()+".wav", wav)
	if err != nil {
		err = fmt.Errorf("failed to store audio: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &texttospeech.Speech{AudioURL: audioURL, DurationMS: durationMS}, nil
}

// collectAudio reads binary frames off the speak stream until deepgram
// reports the buffered text as flushed.
func collectAudio(ctx context.Context, conn *websocket.Conn) ([]byte, error) {
	var data []byte
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("websocket read error: %w", err)
		}

		switch msgType {
		case websocket.BinaryMessage:
			data = append(data, msg...)
		case websocket.TextMessage:
			var parsedMsg struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				logger.WarnContext(ctx, "failed to unmarshal deepgram message", "error", err)
				continue
			}

			switch parsedMsg.Type {
			case "Flushed":
				return data, nil
			case "Error":
				return nil, fmt.Errorf("deepgram reported an error: %s", msg)
			}
		}
	}
}

func connectWebsocket(voice deepgramVoice, encodingInfo audio.EncodingInfo) (*websocket.Conn, error) {
	apiKey, ok := os.LookupEnv("DEEPGRAM_API_KEY")
	if !ok {
		return nil, fmt.Errorf("deepgram api key not found")
	}

	urlValues := url.Values{}
	urlValues.Set("encoding", encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	urlValues.Set("model", string(voice))
	urlValues.Set("container", "none")

	conn, _, err := websocket.DefaultDialer.Dial(
		(&url.URL{
			Scheme: "wss",
			Host:   "api.deepgram.com", Path: "/v1/speak",
			RawQuery: urlValues.Encode(),
		}).String(),
		http.Header{"Authorization": {"token " + apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}
