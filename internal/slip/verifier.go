package slip

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/itstudent003/yoyebot/internal/queue"
	"github.com/itstudent003/yoyebot/internal/thaitime"
)

// Outcome classifies one slip submission.
type Outcome int

const (
	// OutcomeNotSlip means the verifier response lacked the required
	// fields: the image is not a transfer slip.  No reply is sent.
	OutcomeNotSlip Outcome = iota
	// OutcomeReceiverMismatch means the money went to an account other
	// than the shop's.  Nothing is persisted so a corrected submission of
	// the same transaction is not pre-blocked.
	OutcomeReceiverMismatch
	// OutcomeDuplicate means a record for this transaction reference
	// already exists; the stored record is left untouched.
	OutcomeDuplicate
	// OutcomeAccepted means the slip verified, the idempotency record was
	// written, and the customer gets a confirmation.
	OutcomeAccepted
)

const msgDuplicate = "⚠️ สลิปนี้ถูกใช้งานในระบบแล้วค่ะ\n" +
	"(This slip has already been used.)\n\n" +
	"หากลูกค้าส่งสลิปเดิมซ้ำจากความผิดพลาด\n" +
	"สามารถแจ้งแอดมินเพื่อตรวจสอบได้เลยนะคะ 🤍✨\n" +
	"(Please contact admin for manual review if needed.)"

const msgReceiverMismatch = "❌ ขออภัยค่ะ ยังไม่พบข้อมูลสลิปนี้ในระบบนะคะ\n" +
	"(Slip not found in our system.)\n\n" +
	"บอทตรวจสอบเฉพาะยอดที่โอนเข้าบัญชีร้านเท่านั้นนะคะ\n" +
	"(The system only detects transfers to the official account.)\n\n" +
	"หากโอนไปบัญชีอื่นหรือสงสัยเพิ่มเติม\n" +
	"แจ้งแอดมินเพื่อตรวจสอบได้เลยค่ะ 🤍✨\n" +
	"(Please contact admin for assistance.)"

// VerifyClient is the OCR verification collaborator.
type VerifyClient interface {
	Verify(ctx context.Context, image []byte) (*Verification, error)
}

// Store is the idempotency store keyed by transaction reference.  The
// single atomic put-if-absent doubles as the duplicate check, so two
// concurrent submissions of the same reference cannot both win.
type Store interface {
	PutIfAbsent(ctx context.Context, transRef string, payload []byte) (bool, error)
}

// Verifier runs one slip submission through verification, receiver check
// and idempotent persistence.
type Verifier struct {
	Client   VerifyClient
	Store    Store
	Receiver *regexp.Regexp                                             // accepted receiver names (Thai or English)
	Publish  func(ctx context.Context, ev queue.SlipAcceptedEvent) error // nil disables
}

// Process classifies the image and returns the outcome plus the reply text
// for the customer; the reply is empty for OutcomeNotSlip.  An error means
// the attempt itself failed (verifier unreachable, store down) and the
// caller should apologize generically.  Submissions are never retried.
func (v *Verifier) Process(ctx context.Context, userID string, image []byte) (Outcome, string, error) {
	ver, err := v.Client.Verify(ctx, image)
	if err != nil {
		return OutcomeNotSlip, "", err
	}

	if ver.HTTPStatus < 200 || ver.HTTPStatus > 299 || ver.Result == nil ||
		ver.Result.Status != 200 || ver.Result.Data == nil ||
		strings.TrimSpace(ver.Result.Data.TransRef) == "" {
		return OutcomeNotSlip, "", nil
	}
	data := ver.Result.Data

	// Receiver check runs before the write: a mismatched slip must leave
	// no record, otherwise a corrected resubmission would read as a
	// duplicate.
	nameTh := data.Receiver.Account.Name.Th
	nameEn := data.Receiver.Account.Name.En
	if !v.Receiver.MatchString(nameTh) && !v.Receiver.MatchString(nameEn) {
		log.Printf("slip: receiver mismatch: %q / %q", nameTh, nameEn)
		return OutcomeReceiverMismatch, msgReceiverMismatch, nil
	}

	created, err := v.Store.PutIfAbsent(ctx, data.TransRef, ver.Raw)
	if err != nil {
		return OutcomeNotSlip, "", fmt.Errorf("persist slip %s: %w", data.TransRef, err)
	}
	if !created {
		return OutcomeDuplicate, msgDuplicate, nil
	}

	if v.Publish != nil {
		var amount float64
		if data.Amount != nil {
			amount = data.Amount.Amount
		}
		ev := queue.SlipAcceptedEvent{
			TransRef:      data.TransRef,
			Amount:        amount,
			TransferredAt: data.Date,
			SenderBank:    senderBank(data),
			SenderAccount: senderAccount(data),
			UserID:        userID,
			AcceptedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := v.Publish(ctx, ev); err != nil {
			log.Printf("slip: publish accepted event: %v", err)
		}
	}
	return OutcomeAccepted, confirmationMessage(data), nil
}

func confirmationMessage(data *Data) string {
	dateTH, timeTH := "-", "-"
	if t, err := time.Parse(time.RFC3339, data.Date); err == nil {
		dateTH = thaitime.Date(t)
		timeTH = thaitime.Clock(t)
	}
	// A declared zero renders as 0; only a missing amount object becomes a
	// dash.
	amount := "-"
	if data.Amount != nil {
		amount = strconv.FormatFloat(data.Amount.Amount, 'f', -1, 64)
	}
	return fmt.Sprintf(
		"✅ ตรวจสอบสลิปเรียบร้อยค่ะ ♡\n"+
			"(Payment verified successfully.)\n\n"+
			"📅 วันที่โอน: %s\n"+
			"⏰ เวลา: %s\n"+
			"💸 จำนวนเงิน: %s บาท\n"+
			"🏦 จากบัญชี:  %s (%s)\n\n"+
			"ยอดเข้าบัญชีร้านเรียบร้อยแล้วนะคะ ขอบคุณค่ะ 🐰🌷\n"+
			"(Your payment has been received. Thank you!)",
		dateTH, timeTH, amount, senderBank(data), senderAccount(data))
}

func senderBank(data *Data) string {
	if s := data.Sender.Bank.Short; s != "" {
		return s
	}
	if n := data.Sender.Bank.Name; n != "" {
		return n
	}
	return "-"
}

func senderAccount(data *Data) string {
	if a := data.Sender.Account.Bank.Account; a != "" {
		return a
	}
	if a := data.Sender.Account.Proxy.Account; a != "" {
		return a
	}
	return "-"
}
