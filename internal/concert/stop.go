package concert

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/itstudent003/yoyebot/internal/queue"
	"github.com/itstudent003/yoyebot/internal/thaitime"
)

// stopOperator labels who triggered the stop in the group notice and log.
const stopOperator = "ลูกค้า (ผ่าน LINE OA)"

// StopService handles the "customer got their own ticket" opt-out: find
// the customer's queue row, set its stop-flag cell, tell the operator
// group, append an audit-log row and publish a broker event.
type StopService struct {
	Sheets     Sheets
	Resolver   *Resolver
	GroupID    string                                                     // operator LINE group
	Notify     func(ctx context.Context, to, text string) error           // LINE push
	LogSheetID string                                                     // audit-log spreadsheet
	LogTab     string                                                     // audit-log tab
	Publish    func(ctx context.Context, ev queue.QueueStoppedEvent) error // nil disables
}

// Stop scans every concert for the first queue row whose UID column equals
// userID and flips that row's stop flag (column N) to TRUE.  It returns
// false when no row matched anywhere.  Unreadable spreadsheets are logged
// and skipped; notification and audit failures are logged but do not undo
// the flag.
func (s *StopService) Stop(ctx context.Context, userID string) (bool, error) {
	entries, err := s.Resolver.Resolve(ctx)
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		rows, err := s.Sheets.ReadRange(ctx, entry.SpreadsheetID, "A2:O")
		if err != nil {
			log.Printf("stop: skip concert %q: %v", entry.Name, err)
			continue
		}
		for i, row := range rows {
			if strings.TrimSpace(cell(row, colUID)) != userID {
				continue
			}
			// Data starts at sheet row 2, so slice index i lives in row i+2.
			flagCell := fmt.Sprintf("N%d", i+2)
			if err := s.Sheets.UpdateCell(ctx, entry.SpreadsheetID, flagCell, "TRUE"); err != nil {
				return false, fmt.Errorf("stop: set flag %s in %q: %w", flagCell, entry.Name, err)
			}

			queueNo := orDash(cell(row, colOrder))
			round := orDash(cell(row, colRound))
			now := time.Now()
			s.notifyGroup(ctx, entry.Name, queueNo, round, userID, now)
			s.appendAuditRow(ctx, entry.Name, round, userID, now)
			if s.Publish != nil {
				ev := queue.QueueStoppedEvent{
					Concert:   entry.Name,
					QueueNo:   queueNo,
					Round:     round,
					UserID:    userID,
					StoppedAt: now.UTC().Format(time.RFC3339),
				}
				if err := s.Publish(ctx, ev); err != nil {
					log.Printf("stop: publish event: %v", err)
				}
			}
			return true, nil
		}
	}
	return false, nil
}

func (s *StopService) notifyGroup(ctx context.Context, concert, queueNo, round, userID string, now time.Time) {
	text := fmt.Sprintf(
		"[🛑 หยุดกด – ลูกค้าได้บัตรเองแล้ว]\n\n"+
			"งาน: %s\n"+
			"คิว: %s\n"+
			"รอบการแสดง: %s\n"+
			"ลูกค้า: (UID: %s)\n"+
			"โดย: %s | เวลา: %s",
		concert, queueNo, round, userID, stopOperator, thaitime.Timestamp(now))
	if err := s.Notify(ctx, s.GroupID, text); err != nil {
		log.Printf("stop: notify group: %v", err)
	}
}

// appendAuditRow writes one row to the Logs tab: timestamp, event name,
// role, email, name, admin UID, customer UID.  The column set matches the
// rows operators append from their admin tooling.
func (s *StopService) appendAuditRow(ctx context.Context, concert, round, userID string, now time.Time) {
	eventName := fmt.Sprintf("หยุดกด (ลูกค้าได้บัตรเอง) - %s / รอบ: %s", concert, round)
	row := []string{thaitime.Timestamp(now), eventName, "Customer", "-", "-", "-", userID}
	if err := s.Sheets.AppendRow(ctx, s.LogSheetID, s.LogTab, row); err != nil {
		log.Printf("stop: append audit row: %v", err)
	}
}
