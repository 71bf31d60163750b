package xapi

import (
	"context"
	"net/http"

	"github.com/zach-sndr/agentic-social/internal/model"
	"github.com/zach-sndr/agentic-social/internal/xclient"
)

type dmAttachment struct {
	MediaID string `json:"media_id"`
}

type dmBody struct {
	Text        string         `json:"text,omitempty"`
	Attachments []dmAttachment `json:"attachments,omitempty"`
}

// SendDM sends text, and optionally one media file, to the user behind handle.
func (s *Service) SendDM(ctx context.Context, handle, text, mediaPath string) (*model.DMEvent, error) {
	if text == "" && mediaPath == "" {
		return nil, &InputError{Msg: "direct message needs text or media"}
	}
	participant, err := s.UserIDByUsername(ctx, handle)
	if err != nil {
		return nil, err
	}

	body := dmBody{Text: text}
	if mediaPath != "" {
		mediaID, err := s.exec.UploadMedia(ctx, mediaPath, xclient.CategoryDMImage)
		if err != nil {
			return nil, err
		}
		body.Attachments = []dmAttachment{{MediaID: mediaID}}
	}

	var resp struct {
		Data *model.DMEvent `json:"data"`
	}
	err = s.exec.Do(ctx, xclient.Request{
		Name:   "send_dm",
		Method: http.MethodPost,
		Path:   "/2/dm_conversations/with/" + participant + "/messages",
		JSON:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, noData("send_dm")
	}
	return resp.Data, nil
}
