package models

import (
	"encoding/json"
	"net/url"
)

// Content types: the tag selecting which payload shape applies.
const (
	TypeText     = "text"
	TypeImage    = "image"
	TypeVideo    = "video"
	TypeAudio    = "audio"
	TypeCitation = "citation"
	TypeLink     = "link"
)

// ContentTypes lists every recognized content type tag.
var ContentTypes = []string{TypeText, TypeImage, TypeVideo, TypeAudio, TypeCitation, TypeLink}

// IsContentType reports whether t is a recognized content type tag.
func IsContentType(t string) bool {
	for _, known := range ContentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// One struct per payload shape. Exactly the shape named by the type tag must
// match; optional fields use omitempty so canonical payloads stay minimal.

// TextData payload for type "text"
type TextData struct {
	Text string `json:"text"`
}

// ImageData payload for type "image"
type ImageData struct {
	ImageURL     string `json:"imageUrl"`
	ImageCaption string `json:"imageCaption,omitempty"`
}

// VideoData payload for type "video"
type VideoData struct {
	VideoURL string `json:"videoUrl"`
}

// AudioData payload for type "audio"
type AudioData struct {
	AudioURL string `json:"audioUrl"`
}

// CitationData payload for type "citation"
type CitationData struct {
	CitationText   string `json:"citationText"`
	CitationSource string `json:"citationSource,omitempty"`
}

// LinkData payload for type "link"
type LinkData struct {
	LinkURL         string `json:"linkUrl"`
	LinkDescription string `json:"linkDescription,omitempty"`
}

// ValidateContentData checks that contentType is a recognized tag and that raw
// satisfies that tag's payload shape. It returns the canonical payload on
// success: the input decoded into the typed shape and re-encoded, so unknown
// keys are dropped. On failure it returns a *ValidationError listing every
// violated field.
func ValidateContentData(contentType string, raw json.RawMessage) (json.RawMessage, error) {
	verr := &ValidationError{}

	if !IsContentType(contentType) {
		verr.Add("type", "unrecognized content type %q", contentType)
		return nil, verr
	}

	if len(raw) == 0 {
		verr.Add("content", "payload is required")
		return nil, verr
	}

	decode := func(dst any) bool {
		if err := json.Unmarshal(raw, dst); err != nil {
			verr.Add("content", "payload is not a valid JSON object")
			return false
		}
		return true
	}

	var canonical any

	switch contentType {
	case TypeText:
		var data TextData
		if !decode(&data) {
			break
		}
		if data.Text == "" {
			verr.Add("content.text", "required non-empty string")
		}
		canonical = data

	case TypeImage:
		var data ImageData
		if !decode(&data) {
			break
		}
		checkURL(verr, "content.imageUrl", data.ImageURL)
		canonical = data

	case TypeVideo:
		var data VideoData
		if !decode(&data) {
			break
		}
		checkURL(verr, "content.videoUrl", data.VideoURL)
		canonical = data

	case TypeAudio:
		var data AudioData
		if !decode(&data) {
			break
		}
		checkURL(verr, "content.audioUrl", data.AudioURL)
		canonical = data

	case TypeCitation:
		var data CitationData
		if !decode(&data) {
			break
		}
		if data.CitationText == "" {
			verr.Add("content.citationText", "required non-empty string")
		}
		canonical = data

	case TypeLink:
		var data LinkData
		if !decode(&data) {
			break
		}
		checkURL(verr, "content.linkUrl", data.LinkURL)
		canonical = data
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}

	out, err := json.Marshal(canonical)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// checkURL records an issue unless value parses as an absolute URL with a host.
func checkURL(verr *ValidationError, field, value string) {
	if value == "" {
		verr.Add(field, "required URL")
		return
	}
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || u.Host == "" {
		verr.Add(field, "must be a well-formed absolute URL")
	}
}

// ValidateSettingsURL applies the same URL rule settings fields use.
func ValidateSettingsURL(value string) bool {
	u, err := url.Parse(value)
	return err == nil && u.IsAbs() && u.Host != ""
}
