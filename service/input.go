// service/input.go
package service

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FolderInput is a folder create or update request. Nil fields are absent.
type FolderInput struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Color           *string `json:"color"`
	CustomCreatedAt *string `json:"customCreatedAt"`
}

type ImageInput struct {
	Data         string `json:"data"`
	OriginalName string `json:"originalName"`
	Mimetype     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

// NoteInput is a note create or update request. Nil fields are absent and
// keep their stored value on update.
type NoteInput struct {
	Title              *string      `json:"title"`
	Content            *string      `json:"content"`
	FolderID           *string      `json:"folderId"`
	Tags               *Tags        `json:"tags"`
	IsPinned           *FlexBool    `json:"isPinned"`
	Images             []ImageInput `json:"images"`
	RemoveImages       StringList   `json:"removeImages"`
	CustomCreatedAt    *string      `json:"customCreatedAt"`
	CustomLastModified *string      `json:"customLastModified"`
}

// Tags accepts a JSON array or a comma-separated string.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Tags{}
		return nil
	}
	var raw []string
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.Split(s, ",")
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = NormalizeTags(raw)
	return nil
}

// NormalizeTags trims every tag, drops empty ones and keeps the first
// occurrence of duplicates.
func NormalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// FlexBool accepts true/false or the strings "true"/"false". Any other
// string is false.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = FlexBool(s == "true")
		return nil
	}
	var v bool
	if bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = FlexBool(v)
	return nil
}

// StringList accepts a single string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
