// Package restapi implements the service.Service interface against the
// PerforMate REST backend.
package restapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"performate/internal/api"
	"performate/internal/service"
	"performate/internal/voice"
)

// ErrMalformedResponse marks a response whose shape the client refuses
// to interpret (non-array voice catalog, settings without stability).
var ErrMalformedResponse = errors.New("malformed response")

// Client implements service.Service over the REST API.
type Client struct {
	api *api.Client
}

// New creates a client for the given base URL using src for bearer
// credentials.
func New(baseURL string, src oauth2.TokenSource, log zerolog.Logger) *Client {
	return &Client{api: api.New(baseURL, src, log)}
}

// Tasks returns the full task list.
func (c *Client) Tasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.api.GetJSON(ctx, "/main/todo/", &tasks); err != nil {
		return nil, wrapError(err)
	}
	return tasks, nil
}

// UpdateTask patches a task or subtask.
func (c *Client) UpdateTask(ctx context.Context, upd service.TaskUpdate) error {
	if upd.TaskType != service.TypeTask && upd.TaskType != service.TypeSubtask {
		return fmt.Errorf("invalid task type: %s", upd.TaskType)
	}
	if err := c.api.PatchJSON(ctx, "/main/tasks/update/", upd, nil); err != nil {
		return wrapError(err)
	}
	return nil
}

// SendText submits a typed chat turn.
func (c *Client) SendText(ctx context.Context, message string) (service.AssistantReply, error) {
	var resp struct {
		Response string `json:"response"`
	}
	err := c.api.PostJSON(ctx, "/main/assistant-request/", map[string]string{
		"message": message,
	}, &resp)
	if err != nil {
		return service.AssistantReply{}, wrapError(err)
	}
	return service.AssistantReply{Response: resp.Response}, nil
}

// SendAudio uploads a recorded turn as multipart form data. The reply
// carries the recognized transcript and a base64 audio response, which
// is decoded here so callers hold playable bytes.
func (c *Client) SendAudio(ctx context.Context, wav []byte) (service.AssistantReply, error) {
	var resp struct {
		Transcript string `json:"transcript"`
		Response   string `json:"response"`
		Audio      string `json:"audio"`
	}
	err := c.api.PostMultipart(ctx, "/main/assistant-voice-request/", "audio", "recording.wav", wav, &resp)
	if err != nil {
		return service.AssistantReply{}, wrapError(err)
	}

	reply := service.AssistantReply{
		Transcript: resp.Transcript,
		Response:   resp.Response,
	}
	if resp.Audio != "" {
		audio, err := base64.StdEncoding.DecodeString(resp.Audio)
		if err != nil {
			return service.AssistantReply{}, fmt.Errorf("%w: undecodable audio", ErrMalformedResponse)
		}
		reply.Audio = audio
	}
	return reply, nil
}

// Notifications returns all notifications.
func (c *Client) Notifications(ctx context.Context) ([]service.Notification, error) {
	var notifs []service.Notification
	if err := c.api.GetJSON(ctx, "/main/notifications/", &notifs); err != nil {
		return nil, wrapError(err)
	}
	return notifs, nil
}

// MarkNotificationRead sets the read flag by id.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	err := c.api.PatchJSON(ctx, "/main/notifications/", map[string]int{
		"notification_id": id,
	}, nil)
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// QueryVoices sends the facet filter and returns matching catalog
// entries. Fails closed: a response whose voices field is not an array
// is an error, and the caller's current list stays as it was.
func (c *Client) QueryVoices(ctx context.Context, f voice.Filter) ([]voice.Voice, error) {
	var resp struct {
		Voices json.RawMessage `json:"voices"`
	}
	if err := c.api.PostJSON(ctx, "/main/voice-selection/", f, &resp); err != nil {
		return nil, wrapError(err)
	}

	var voices []voice.Voice
	if err := json.Unmarshal(resp.Voices, &voices); err != nil {
		return nil, fmt.Errorf("%w: voices is not an array", ErrMalformedResponse)
	}
	return voices, nil
}

// VoiceSettings fetches a voice's default synthesis parameters. A reply
// without a stability field is invalid; the caller keeps its settings.
func (c *Client) VoiceSettings(ctx context.Context, voiceID string) (voice.Settings, error) {
	var resp struct {
		Stability       *float64 `json:"stability"`
		SimilarityBoost float64  `json:"similarity_boost"`
		Style           float64  `json:"style"`
		UseSpeakerBoost bool     `json:"use_speaker_boost"`
	}
	err := c.api.PostJSON(ctx, "/main/voice-settings/", map[string]string{
		"voice_id": voiceID,
	}, &resp)
	if err != nil {
		return voice.Settings{}, wrapError(err)
	}
	if resp.Stability == nil {
		return voice.Settings{}, fmt.Errorf("%w: settings missing stability", ErrMalformedResponse)
	}
	return voice.Settings{
		Stability:       *resp.Stability,
		SimilarityBoost: resp.SimilarityBoost,
		Style:           resp.Style,
		UseSpeakerBoost: resp.UseSpeakerBoost,
	}, nil
}

// VoiceConfig loads the saved configuration. Absence is nil, not an
// error: a fresh account has nothing saved yet.
func (c *Client) VoiceConfig(ctx context.Context) (*voice.Config, error) {
	var resp struct {
		VoiceConfig *voice.Config `json:"voice_config"`
	}
	if err := c.api.GetJSON(ctx, "/main/voice-config/", &resp); err != nil {
		var serr *api.StatusError
		if errors.As(err, &serr) && serr.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, wrapError(err)
	}
	return resp.VoiceConfig, nil
}

// SaveVoiceConfig persists the composed configuration as one request.
func (c *Client) SaveVoiceConfig(ctx context.Context, cfg voice.Config) error {
	if err := c.api.PostJSON(ctx, "/main/voice-config/", cfg, nil); err != nil {
		return wrapError(err)
	}
	return nil
}

// wrapError maps auth responses to a friendly message; everything else
// passes through with the server-provided text intact.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if api.IsAuthError(err) {
		return fmt.Errorf("session expired (run: performate login)")
	}
	return err
}
