package core

import (
	"strconv"
	"strings"
)

// placeholder shown when a paid coach has no resident ID on file.
const residentIDMissing = "주민번호 미입력"

// BuildReport renders the year's filing report for the tax accountant as
// deterministic plain text: the identity roster of every coach paid a
// non-zero amount in any rostered month, a month-by-month breakdown of
// months with at least one non-zero payment, and the grand annual total.
//
// This is pure formatting over the book: the only rule beyond the monthly
// summaries is "include only payments > 0". A rostered coach whose every
// amount is zero appears in summaries but never here.
func BuildReport(b *PayrollBook, year string) string {
	paid := make(map[string]struct{})
	for m := 0; m < MonthsPerYear; m++ {
		for _, id := range b.Roster(year, m) {
			if b.Amount(year, id, m) > 0 {
				paid[id] = struct{}{}
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("세무사님, 안녕하세요.\n")
	sb.WriteString(year + "년도 체육관 인건비 신고자료 송부드립니다.\n\n")

	sb.WriteString("■ 1. 코치 인적사항\n")
	sb.WriteString("===================================\n")
	for _, c := range b.Coaches {
		if _, ok := paid[c.ID]; !ok {
			continue
		}
		rid := c.ResidentID
		if rid == "" {
			rid = residentIDMissing
		}
		sb.WriteString("- " + c.Name + " (" + rid + ")\n")
	}
	sb.WriteString("===================================\n\n")

	sb.WriteString("■ 2. 월별 상세\n")
	var grandTotal int64
	for m := 0; m < MonthsPerYear; m++ {
		var monthTotal int64
		var lines []string
		for _, id := range b.Roster(year, m) {
			amount := b.Amount(year, id, m)
			if amount <= 0 {
				continue
			}
			coach, ok := b.FindCoach(id)
			if !ok {
				continue
			}
			lines = append(lines, "- "+coach.Name+": "+FormatWon(amount)+"원\n")
			monthTotal += amount
		}
		if len(lines) == 0 {
			continue
		}
		sb.WriteString("\n[" + strconv.Itoa(m+1) + "월]\n")
		for _, line := range lines {
			sb.WriteString(line)
		}
		sb.WriteString("* 월 합계: " + FormatWon(monthTotal) + "원\n")
		grandTotal += monthTotal
	}

	sb.WriteString("\n>> 연간 총 지급액: " + FormatWon(grandTotal) + "원")
	return sb.String()
}

// ReportSubject is the email subject line the client offers alongside the
// report body.
func ReportSubject(year string) string {
	return "[급여신고] " + year + "년도 체육관 인건비 명세서"
}
