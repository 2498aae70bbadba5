package models

// AttachmentType classifies a message attachment.
type AttachmentType string

const (
	AttachmentImage    AttachmentType = "image"
	AttachmentAudio    AttachmentType = "audio"
	AttachmentVideo    AttachmentType = "video"
	AttachmentDocument AttachmentType = "document"
	AttachmentFile     AttachmentType = "file"
)

// Attachment describes a file referenced by a message.
type Attachment struct {
	Type         AttachmentType `json:"attachment_type"`
	URL          string         `json:"url"`
	MIMEType     string         `json:"mime_type,omitempty"`
	Filename     string         `json:"filename,omitempty"`
	Size         int64          `json:"size,omitempty"`
	ThumbnailURL string         `json:"thumbnail_url,omitempty"`
}

// NewAttachment creates an attachment of the given type pointing at url.
func NewAttachment(t AttachmentType, url string) Attachment {
	return Attachment{Type: t, URL: url}
}

// IsImage reports whether the attachment is an image.
func (a Attachment) IsImage() bool {
	return a.Type == AttachmentImage
}

// IsMedia reports whether the attachment is image, audio or video.
func (a Attachment) IsMedia() bool {
	switch a.Type {
	case AttachmentImage, AttachmentAudio, AttachmentVideo:
		return true
	}
	return false
}
