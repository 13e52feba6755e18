package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strconv"
	"time"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// ReservationConfirmationData carries the fields rendered into the
// confirmation mail body.
type ReservationConfirmationData struct {
	ReservationCode string
	VenueName       string
	EventDate       time.Time
	Guests          int
	DetailLink      string
}

// SendReservationConfirmationEmail sends the booking confirmation (async so
// the reservation response is not delayed by SMTP).
func SendReservationConfirmationEmail(to string, data ReservationConfirmationData) {
	go func() {
		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		if host == "" {
			log.Printf("email: SMTP_HOST not set, skipping confirmation for %s", data.ReservationCode)
			return
		}

		port, _ := strconv.Atoi(portStr)

		body := fmt.Sprintf(
			"<p>Tu reserva <strong>%s</strong> en <strong>%s</strong> fue registrada.</p>"+
				"<p>Fecha del evento: %s<br>Invitados: %d</p>"+
				"<p><a href=%q>Ver detalle de la reserva</a></p>",
			data.ReservationCode, data.VenueName,
			data.EventDate.Format("02/01/2006"), data.Guests,
			data.DetailLink,
		)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Confirmación de reserva #"+data.ReservationCode)
		m.SetBody("text/html", body)

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("email: confirmation send failed: %v", err)
		}
	}()
}

// SendPasswordResetEmail mails the recovery link for a reset token.
func SendPasswordResetEmail(to, resetLink string) error {
	host := os.Getenv("SMTP_HOST")
	addr := host + ":" + os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")

	e := email.NewEmail()
	e.From = os.Getenv("SMTP_FROM")
	e.To = []string{to}
	e.Subject = "Recuperación de contraseña"
	e.Text = []byte(fmt.Sprintf("Haz clic en el enlace para restablecer tu contraseña: %s", resetLink))
	return e.Send(addr, smtp.PlainAuth("", username, password, host))
}
