package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Mailer struct {
	apiKey      string
	senderEmail string
	senderName  string
	client      *http.Client
	baseURL     string
}

func NewMailer(apiKey, senderEmail string) *Mailer {
	return &Mailer{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  "EduPlatform",
		client:      &http.Client{Timeout: 15 * time.Second},
		baseURL:     "https://api.sendgrid.com/v3/mail/send",
	}
}

// SendGrid request format
type sgEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}
type sgPersonalization struct {
	To []sgEmail `json:"to"`
}
type sgRequest struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgEmail             `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

// SendCourseUpdate шлёт одно письмо всем подписчикам обновлённого курса.
func (m *Mailer) SendCourseUpdate(courseName string, recipients []string) error {
	to := make([]sgEmail, 0, len(recipients))
	for _, r := range recipients {
		to = append(to, sgEmail{Email: r})
	}

	body := sgRequest{
		Personalizations: []sgPersonalization{{To: to}},
		From: sgEmail{
			Email: m.senderEmail,
			Name:  m.senderName,
		},
		Subject: "Обновление курса!",
		Content: []sgContent{
			{
				Type:  "text/plain",
				Value: fmt.Sprintf("Для курса %s вышло обновление. Зайдите и посмотрите сейчас!", courseName),
			},
		},
	}

	bodyBytes, _ := json.Marshal(body)

	req, err := http.NewRequest("POST", m.baseURL, bytes.NewBuffer(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// SendGrid отвечает 202 при успехе
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sendgrid error: status=%d body=%s", resp.StatusCode, body)
	}

	return nil
}
