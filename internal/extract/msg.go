package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"
)

// Outlook .msg files are OLE compound documents. Each MAPI property lives in
// its own stream named __substg1.0_XXXXYYYY where XXXX is the property tag
// and YYYY the type (001F = UTF-16LE string, 001E = 8-bit string).
const (
	propSubject          = "0037"
	propSenderName       = "0C1A"
	propSenderEmail      = "0C1F"
	propBody             = "1000"
	propTransportHeaders = "007D"
)

func parseMsg(raw []byte) (Content, error) {
	doc, err := mscfb.New(bytes.NewReader(raw))
	if err != nil {
		return Content{}, fmt.Errorf("open compound file: %w", err)
	}

	props := map[string]string{}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		tag, typ, ok := splitStreamName(entry.Name)
		if !ok {
			continue
		}
		switch tag {
		case propSubject, propSenderName, propSenderEmail, propBody, propTransportHeaders:
		default:
			continue
		}
		// keep the first occurrence; attachments embed their own property sets
		if _, seen := props[tag]; seen {
			continue
		}
		data := make([]byte, entry.Size)
		if _, err := io.ReadFull(entry, data); err != nil {
			continue
		}
		props[tag] = decodeMsgString(data, typ)
	}

	sender := props[propSenderName]
	if email := props[propSenderEmail]; email != "" {
		if sender == "" {
			sender = email
		} else if !strings.Contains(sender, "@") {
			sender = sender + " <" + email + ">"
		}
	}

	return Content{
		Subject: props[propSubject],
		Sender:  sender,
		Date:    dateFromTransportHeaders(props[propTransportHeaders]),
		Body:    props[propBody],
	}, nil
}

func splitStreamName(name string) (tag, typ string, ok bool) {
	const prefix = "__substg1.0_"
	if !strings.HasPrefix(name, prefix) || len(name) != len(prefix)+8 {
		return "", "", false
	}
	suffix := name[len(prefix):]
	return suffix[:4], suffix[4:], true
}

func decodeMsgString(data []byte, typ string) string {
	if typ == "001F" {
		u := make([]uint16, len(data)/2)
		for i := range u {
			u[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
		}
		return strings.TrimRight(string(utf16.Decode(u)), "\x00")
	}
	return strings.TrimRight(string(data), "\x00")
}

// dateFromTransportHeaders pulls the Date: header line out of the raw
// transport headers, when the message kept them. The value stays opaque.
func dateFromTransportHeaders(headers string) string {
	for _, line := range strings.Split(headers, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimRight(line, "\r"), "Date:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
