package usecase

import (
	"bytes"
	"html/template"
	"time"

	"wow-campus/internal/infrastructure/mail"
	"wow-campus/internal/repository"
)

const inquirySubjectPrefix = "[WOW-CAMPUS 문의] "

var inquiryTemplate = template.Must(template.New("inquiry").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: 'Malgun Gothic', sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
<h2>새로운 문의가 접수되었습니다</h2>
<p><strong>이름:</strong> {{.Name}}</p>
<p><strong>이메일:</strong> {{.Email}}</p>
<p><strong>제목:</strong> {{.Subject}}</p>
<p><strong>접수 번호:</strong> {{.ID}}</p>
<p><strong>언어:</strong> {{.Locale}}</p>
<p><strong>접수 시간:</strong> {{.Received}}</p>
<hr>
<p style="white-space: pre-wrap;">{{.Message}}</p>
</div>
</body>
</html>
`))

// inquiryMessage renders the staff notification for a stored inquiry. The
// visitor's address becomes Reply-To so staff can answer directly.
func inquiryMessage(in repository.ContactInquiry, from string, to []string, now time.Time) (mail.Message, error) {
	var buf bytes.Buffer
	err := inquiryTemplate.Execute(&buf, struct {
		repository.ContactInquiry
		Received string
	}{in, now.Format("2006-01-02 15:04:05 MST")})
	if err != nil {
		return mail.Message{}, err
	}
	return mail.Message{
		From:    from,
		To:      to,
		ReplyTo: in.Email,
		Subject: inquirySubjectPrefix + in.Subject,
		HTML:    buf.String(),
	}, nil
}
