package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ChatMessage is one bubble in the mood chat.
type ChatMessage struct {
	ID     string
	Sender string // "you" or "coach"
	Text   string
	Time   string // HH:MM
}

// Chat renders the mood-chat page.
func Chat(messages []ChatMessage, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<section class="chat"><h2>Mood Chat</h2><div id="messages" class="messages">`); err != nil {
			return err
		}
		if err := chatMessages(messages).Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `</div>
<form hx-post="/chat/send" hx-target="#messages" hx-swap="beforeend" hx-disabled-elt="find button" hx-on::after-request="this.reset()">
<input type="hidden" name="_csrf" value="%s">
<input type="text" name="message" placeholder="Type your message..." autocomplete="off" required>
<button type="submit">Send</button>
</form></section>`, templ.EscapeString(csrfToken)); err != nil {
			return err
		}
		return nil
	})
}

// ChatTurn is the fragment appended after a send: the user's message and
// the coach's reply.
func ChatTurn(messages []ChatMessage) templ.Component {
	return chatMessages(messages)
}

func chatMessages(messages []ChatMessage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, m := range messages {
			cls := "bubble bubble-coach"
			if m.Sender == "you" {
				cls = "bubble bubble-you"
			}
			if _, err := fmt.Fprintf(w,
				`<div class="%s" id="msg-%s"><p>%s</p><span class="time">%s</span></div>`,
				cls, templ.EscapeString(m.ID), templ.EscapeString(m.Text), templ.EscapeString(m.Time)); err != nil {
				return err
			}
		}
		return nil
	})
}
