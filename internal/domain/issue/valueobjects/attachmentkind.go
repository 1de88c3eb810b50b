package valueobjects

import (
	"path"
	"strings"
)

type AttachmentKind string

const (
	AttachmentKindImage  AttachmentKind = "IMAGE"
	AttachmentKindVideo  AttachmentKind = "VIDEO"
	AttachmentKindLog    AttachmentKind = "LOG"
	AttachmentKindPcap   AttachmentKind = "PCAP"
	AttachmentKindBinary AttachmentKind = "BINARY"
	AttachmentKindOther  AttachmentKind = "OTHER"
)

func (k AttachmentKind) String() string {
	return string(k)
}

func (k AttachmentKind) IsValid() bool {
	switch k {
	case AttachmentKindImage, AttachmentKindVideo, AttachmentKindLog,
		AttachmentKindPcap, AttachmentKindBinary, AttachmentKindOther:
		return true
	}
	return false
}

// DetectAttachmentKind classifies an upload by mime type, then by file
// extension for captures and logs that browsers send as octet-stream.
func DetectAttachmentKind(filename, mimeType string) AttachmentKind {
	mimeType = strings.ToLower(mimeType)
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return AttachmentKindImage
	case strings.HasPrefix(mimeType, "video/"):
		return AttachmentKindVideo
	}

	switch strings.ToLower(path.Ext(filename)) {
	case ".pcap", ".pcapng", ".cap":
		return AttachmentKindPcap
	case ".log", ".txt":
		return AttachmentKindLog
	case ".bin", ".img", ".hex", ".fw":
		return AttachmentKindBinary
	}

	if strings.HasPrefix(mimeType, "text/") {
		return AttachmentKindLog
	}
	if mimeType == "application/octet-stream" {
		return AttachmentKindBinary
	}
	return AttachmentKindOther
}
