package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brennosantos/eventos/internal/models"
)

// TicketQRPayload builds the string encoded into a ticket's QR image. The
// HMAC signature binds ticket, event and serial so a payload cannot be
// forged or replayed against another event.
func TicketQRPayload(ticket *models.Ticket, secretKey string) string {
	signature := ticketSignature(ticket.ID, ticket.EventID, ticket.Serial, secretKey)
	return fmt.Sprintf("ticket:%s;event:%s;serial:%s;signature:%s",
		ticket.ID.String(),
		ticket.EventID.String(),
		ticket.Serial,
		signature,
	)
}

// ExtractTicketID pulls the ticket id out of a scanned QR payload.
func ExtractTicketID(qrData string) (uuid.UUID, error) {
	parts := strings.Split(qrData, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[0], "ticket:") || !strings.HasPrefix(parts[3], "signature:") {
		return uuid.Nil, fmt.Errorf("invalid QR data format")
	}
	return uuid.Parse(strings.TrimPrefix(parts[0], "ticket:"))
}

// ValidateTicketSignature checks a scanned payload against the stored ticket.
func ValidateTicketSignature(ticket *models.Ticket, qrData, secretKey string) bool {
	parts := strings.Split(qrData, ";")
	if len(parts) != 4 || !strings.HasPrefix(parts[3], "signature:") {
		return false
	}
	signature := strings.TrimPrefix(parts[3], "signature:")
	expected := ticketSignature(ticket.ID, ticket.EventID, ticket.Serial, secretKey)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func ticketSignature(ticketID, eventID uuid.UUID, serial, secretKey string) string {
	data := fmt.Sprintf("%s:%s:%s", ticketID.String(), eventID.String(), serial)
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
