package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/itstudent003/yoyebot/internal/line"
	"github.com/itstudent003/yoyebot/internal/repository"
	"github.com/itstudent003/yoyebot/internal/slip"
)

// Messenger is the LINE collaborator used by the dispatcher.
type Messenger interface {
	Reply(ctx context.Context, replyToken, text string) error
	Push(ctx context.Context, to, text string) error
	Profile(ctx context.Context, userID string) (*line.Profile, error)
	MessageContent(ctx context.Context, messageID string) ([]byte, error)
}

// Searcher runs the reservation lookups behind the text commands.
type Searcher interface {
	Search(ctx context.Context, keyword, targetConcert string) (string, error)
	LookupSeat(ctx context.Context, uid, concertName string) (string, error)
}

// QueueStopper flips a customer's stop flag; false means no row matched.
type QueueStopper interface {
	Stop(ctx context.Context, userID string) (bool, error)
}

// SlipProcessor verifies a payment slip image.
type SlipProcessor interface {
	Process(ctx context.Context, userID string, image []byte) (slip.Outcome, string, error)
}

// UserRegistry records LINE users on first contact.
type UserRegistry interface {
	Exists(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, userID, displayName, pictureURL, statusMessage string) error
}

// Command patterns for text messages.  Anything that matches none of them
// is left unanswered: the OA chat doubles as a human support channel.
var (
	onboardPattern = regexp.MustCompile(`สนใจ\s*(สอบถาม|ติดต่อ)?\s*และ\s*จ้าง\s*กดบัตร(ค่ะ|ครับ)?`)
	searchPattern  = regexp.MustCompile(`^ค้นหา\s+(.+?)(?:\s+ใน\s+(.+))?$`)
	seatPattern    = regexp.MustCompile(`^เช็คที่นั่ง\s+(.+?)(?:\s+ใน\s+(.+))?$`)
)

const (
	cmdMyID      = "ขอรหัสลูกค้า"
	cmdStop      = "หยุดกดได้เลย"
	prefixSearch = "ค้นหา"
	prefixSeat   = "เช็คที่นั่ง"
)

const msgSearchHint = "⚠️ รูปแบบที่ถูกต้อง:\n" +
	"• ค้นหา [ชื่อ] หรือ [เบอร์โทร] → ค้นหาทุกคอนเสิร์ตในระบบ\n" +
	"• ค้นหา [คำค้น] ใน [ชื่อคอนเสิร์ต] → ค้นหาเฉพาะคอนเสิร์ตนั้น\n\n" +
	"📌 หมายเหตุ: การค้นหาด้วย \"ลำดับคิว\" (เช่น ค้นหา 5) จะใช้ได้เฉพาะเมื่อระบุชื่อคอนเสิร์ตเท่านั้น\n" +
	"ตัวอย่าง:\nค้นหา itstudent\nค้นหา itstudent ใน SupalaiConcert\nค้นหา 5 ใน Blackpink2025"

const msgStopNotFound = "❌ ไม่พบข้อมูลในระบบค่ะ"

const msgGenericError = "⚠️ ขออภัยค่ะ ระบบขัดข้องชั่วคราว กรุณาลองใหม่อีกครั้งนะคะ"

const msgSlipError = "⚠️ เกิดข้อผิดพลาดระหว่างตรวจสอบสลิปค่ะ กรุณาลองใหม่อีกครั้ง"

const msgJoinGreeting = "สวัสดีค่า ยยมือทองพร้อมให้บริการในกลุ่มนี้แล้วนะคะ 🐰💗\n" +
	"พิมพ์ \"ค้นหา [คำค้น]\" เพื่อตรวจสอบคิวได้เลยค่ะ"

// WebhookHandler is the event dispatcher: it classifies inbound LINE
// events and routes them to the matcher, stop service or slip verifier.
type WebhookHandler struct {
	Line    Messenger
	Matcher Searcher
	Stopper QueueStopper
	Slips   SlipProcessor
	Users   UserRegistry
}

// Webhook handles POST /api/webhook.  The 200 is written and flushed to
// the wire before any event is processed so a slow sheet scan or verifier
// call can never surface as a delivery failure to the LINE platform.
func (h *WebhookHandler) Webhook(c echo.Context) error {
	var req line.WebhookRequest
	if err := c.Bind(&req); err != nil {
		log.Printf("webhook: bad payload: %v", err)
		return c.String(http.StatusOK, "OK")
	}
	if err := c.String(http.StatusOK, "OK"); err != nil {
		return err
	}
	// Without the flush the 200 sits in net/http's buffer until this
	// handler returns, which is after all events were processed.
	c.Response().Flush()

	ctx := c.Request().Context()
	for _, ev := range req.Events {
		h.handleEvent(ctx, ev)
	}
	return nil
}

// handleEvent processes one event.  Every failure path ends here: logged,
// answered with a generic apology when a reply token exists, never
// propagated and never retried.
func (h *WebhookHandler) handleEvent(ctx context.Context, ev line.Event) {
	h.registerUser(ctx, ev.Source.UserID)

	switch {
	case ev.Type == "join":
		h.reply(ctx, ev.ReplyToken, msgJoinGreeting)
	case ev.Type == "message" && ev.Message.Type == "text":
		if err := h.handleText(ctx, ev); err != nil {
			log.Printf("webhook: text event: %v", err)
			h.reply(ctx, ev.ReplyToken, msgGenericError)
		}
	case ev.Type == "message" && ev.Message.Type == "image":
		if err := h.handleImage(ctx, ev); err != nil {
			log.Printf("webhook: image event: %v", err)
			h.reply(ctx, ev.ReplyToken, msgSlipError)
		}
	}
}

func (h *WebhookHandler) handleText(ctx context.Context, ev line.Event) error {
	text := strings.TrimSpace(ev.Message.Text)

	switch {
	case onboardPattern.MatchString(text):
		return h.Line.Reply(ctx, ev.ReplyToken, msgOnboarding)

	case strings.Contains(text, cmdStop):
		found, err := h.Stopper.Stop(ctx, ev.Source.UserID)
		if err != nil {
			return err
		}
		if !found {
			return h.Line.Reply(ctx, ev.ReplyToken, msgStopNotFound)
		}
		// The operator group was notified inside the stop flow; the
		// customer chat stays quiet.
		return nil

	case text == cmdMyID:
		return h.Line.Reply(ctx, ev.ReplyToken, "รหัสลูกค้าคือ: "+ev.Source.UserID)

	case strings.HasPrefix(text, prefixSeat):
		m := seatPattern.FindStringSubmatch(text)
		if m == nil {
			return h.Line.Reply(ctx, ev.ReplyToken,
				"⚠️ รูปแบบไม่ถูกต้องค่ะ\nโปรดใช้รูปแบบ: เช็คที่นั่ง {UID} ใน {ชื่อคอนเสิร์ต}")
		}
		result, err := h.Matcher.LookupSeat(ctx, m[1], m[2])
		if err != nil {
			return err
		}
		return h.Line.Reply(ctx, ev.ReplyToken, result)

	case strings.HasPrefix(text, prefixSearch):
		m := searchPattern.FindStringSubmatch(text)
		if m == nil {
			return h.Line.Reply(ctx, ev.ReplyToken, msgSearchHint)
		}
		result, err := h.Matcher.Search(ctx, strings.TrimSpace(m[1]), strings.TrimSpace(m[2]))
		if err != nil {
			return err
		}
		return h.Line.Reply(ctx, ev.ReplyToken, result)
	}
	// Unmatched text stays silent; admins answer prose themselves.
	return nil
}

func (h *WebhookHandler) handleImage(ctx context.Context, ev line.Event) error {
	image, err := h.Line.MessageContent(ctx, ev.Message.ID)
	if err != nil {
		return err
	}
	outcome, reply, err := h.Slips.Process(ctx, ev.Source.UserID, image)
	if err != nil {
		return err
	}
	if outcome == slip.OutcomeNotSlip {
		log.Printf("webhook: skipping non-slip image %s", ev.Message.ID)
		return nil
	}
	return h.Line.Reply(ctx, ev.ReplyToken, reply)
}

// registerUser records the sender on first contact.  Failures are logged
// only; registration must never block command handling.
func (h *WebhookHandler) registerUser(ctx context.Context, userID string) {
	if userID == "" || h.Users == nil {
		return
	}
	exists, err := h.Users.Exists(ctx, userID)
	if err != nil {
		log.Printf("webhook: user lookup %s: %v", userID, err)
		return
	}
	if exists {
		return
	}
	profile, err := h.Line.Profile(ctx, userID)
	if err != nil {
		log.Printf("webhook: fetch profile %s: %v", userID, err)
		return
	}
	err = h.Users.Create(ctx, profile.UserID, profile.DisplayName, profile.PictureURL, profile.StatusMessage)
	if err != nil && !errors.Is(err, repository.ErrUserExists) {
		log.Printf("webhook: register user %s: %v", userID, err)
	}
}

// reply answers an event, logging delivery failures.  Reply tokens are
// single use, so a failed reply is simply dropped.
func (h *WebhookHandler) reply(ctx context.Context, replyToken, text string) {
	if replyToken == "" {
		return
	}
	if err := h.Line.Reply(ctx, replyToken, text); err != nil {
		log.Printf("webhook: reply failed: %v", err)
	}
}
