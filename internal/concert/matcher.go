package concert

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Queue row column positions (0-based within an A-origin range).
const (
	colOrder     = 0  // A: queue order
	colName      = 2  // C: customer name
	colPhone     = 3  // D: phone number
	colUID       = 4  // E: LINE user ID
	colRound     = 6  // G: show round/date
	colCount     = 7  // H: ticket count
	colPrice     = 8  // I: ticket price
	colZone      = 11 // L: seat zone
	colOrderLink = 12 // M: order link
)

// User-facing messages.  These go straight back to the LINE chat, so they
// keep the tone and wording the shop's customers already know.
const (
	msgSeatLookupHint = "⚠️ รูปแบบไม่ถูกต้องค่ะ\nโปรดใช้รูปแบบ: เช็คที่นั่ง {UID} ใน {ชื่อคอนเสิร์ต}"
)

func msgConcertNotFound(concert string) string {
	return fmt.Sprintf("❌ ไม่พบคอนเสิร์ตชื่อ \"%s\" ใน Master Sheet", concert)
}

func msgKeywordNotFound(keyword, targetConcert string) string {
	scope := "ทุกคอนเสิร์ตใน Master Sheet"
	if targetConcert != "" {
		scope = fmt.Sprintf("คอนเสิร์ต \"%s\"", targetConcert)
	}
	return fmt.Sprintf("❌ ไม่พบ \"%s\" ใน%s", keyword, scope)
}

// Matcher scans concert spreadsheets row by row against chat queries.
type Matcher struct {
	Sheets   Sheets
	Resolver *Resolver
}

// Search looks for keyword across every tab of the candidate concerts.
// With targetConcert set, candidates shrink to the single index entry with
// that exact trimmed name; otherwise every concert is scanned.  A row
// matches on queue order (digit-string equality, only when a concert is
// named), then name substring, then phone substring; each matching row is
// listed once.  Unreadable tabs or spreadsheets are logged and skipped so
// the rest of the scan still produces results.  The returned string is
// always a complete user-facing message.
func (m *Matcher) Search(ctx context.Context, keyword, targetConcert string) (string, error) {
	entries, err := m.Resolver.Resolve(ctx)
	if err != nil {
		return "", err
	}

	targetConcert = strings.TrimSpace(targetConcert)
	if targetConcert != "" {
		entries = filterByName(entries, targetConcert)
		if len(entries) == 0 {
			return msgConcertNotFound(targetConcert), nil
		}
	}

	var results []string
	for _, entry := range entries {
		tabs, err := m.Sheets.TabTitles(ctx, entry.SpreadsheetID)
		if err != nil {
			log.Printf("search: skip concert %q: %v", entry.Name, err)
			continue
		}
		for _, tab := range tabs {
			rows, err := m.Sheets.ReadRange(ctx, entry.SpreadsheetID, tab+"!A2:E")
			if err != nil {
				log.Printf("search: skip tab %q of %q: %v", tab, entry.Name, err)
				continue
			}
			for _, row := range rows {
				order := cell(row, colOrder)
				name := cell(row, colName)
				phone := cell(row, colPhone)

				// Queue-order matching needs an explicit concert scope:
				// bare numbers would otherwise hit a row in every sheet.
				matchByOrder := targetConcert != "" && order != "" && order == keyword
				matchByName := name != "" && strings.Contains(name, keyword)
				matchByPhone := phone != "" && strings.Contains(phone, keyword)

				if matchByOrder || matchByName || matchByPhone {
					results = append(results, fmt.Sprintf(
						"🎟️ [%s - %s]\nลำดับ: %s\nชื่อ: %s\nเบอร์: %s\nUID: %s",
						entry.Name, tab, order, name, phone, cell(row, colUID)))
				}
			}
		}
	}

	if len(results) == 0 {
		return msgKeywordNotFound(keyword, targetConcert), nil
	}
	return strings.Join(results, "\n\n"), nil
}

// LookupSeat returns the seat assignment for an exact LINE user ID within
// one named concert.  Both arguments are mandatory; there is no
// all-concerts mode for this lookup.  The first row whose UID column
// equals uid wins.
func (m *Matcher) LookupSeat(ctx context.Context, uid, concertName string) (string, error) {
	uid = strings.TrimSpace(uid)
	concertName = strings.TrimSpace(concertName)
	if uid == "" || concertName == "" {
		return msgSeatLookupHint, nil
	}

	entries, err := m.Resolver.Resolve(ctx)
	if err != nil {
		return "", err
	}
	entries = filterByName(entries, concertName)
	if len(entries) == 0 {
		return msgConcertNotFound(concertName), nil
	}
	entry := entries[0]

	tabs, err := m.Sheets.TabTitles(ctx, entry.SpreadsheetID)
	if err != nil {
		log.Printf("seat lookup: read concert %q: %v", entry.Name, err)
		return fmt.Sprintf("⚠️ ไม่สามารถอ่านข้อมูลคอนเสิร์ต \"%s\" ได้", concertName), nil
	}
	for _, tab := range tabs {
		rows, err := m.Sheets.ReadRange(ctx, entry.SpreadsheetID, tab+"!A2:P")
		if err != nil {
			log.Printf("seat lookup: skip tab %q of %q: %v", tab, entry.Name, err)
			continue
		}
		for _, row := range rows {
			if strings.TrimSpace(cell(row, colUID)) != uid {
				continue
			}
			return fmt.Sprintf(
				"♡ 𝚞𝚙𝚍𝚊𝚝𝚎 : แจ้งที่นั่งแล้วน้า ♡ 𓈒 ᐟ 🎟️✨\n"+
					"🎟️ งาน: %s\n"+
					"📅 วันแสดง: %s\n"+
					"💸 ราคา: %s บาท\n"+
					"📍 โซนและที่นั่ง: %s\n"+
					"💺 จำนวน: %s ใบ\n\n"+
					"%s",
				entry.Name,
				orDash(cell(row, colRound)),
				orDash(cell(row, colPrice)),
				orDash(cell(row, colZone)),
				orDash(cell(row, colCount)),
				orDash(cell(row, colOrderLink))), nil
		}
	}
	return fmt.Sprintf("❌ ไม่พบ UID \"%s\" ในคอนเสิร์ต \"%s\"", uid, concertName), nil
}

func filterByName(entries []Entry, name string) []Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// cell reads a column from a ragged sheet row, empty when absent.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
