package extract

import (
	"bytes"
	"fmt"

	"github.com/jhillyerd/enmime"
)

// parseEml parses raw internet-mail format. enmime flattens the MIME tree
// for us: Envelope.Text is the concatenation of the text/plain parts in
// document order, or the single body when the message is not multipart.
func parseEml(raw []byte) (Content, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return Content{}, fmt.Errorf("parse mime: %w", err)
	}
	return Content{
		Subject: env.GetHeader("Subject"),
		Sender:  env.GetHeader("From"),
		Date:    env.GetHeader("Date"),
		Body:    env.Text,
	}, nil
}
