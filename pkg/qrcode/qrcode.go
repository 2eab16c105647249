package qrcode

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the ticket image width in pixels.
const DefaultSize = 256

// QRService renders enrollment tickets as QR codes.
type QRService struct {
	baseURL string // e.g. "https://eventos.example.com/tickets"
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// TicketURL is the link encoded in the ticket of userID for eventID.
func (s *QRService) TicketURL(eventID, userID uint) string {
	return fmt.Sprintf("%s/%d/%d", s.baseURL, eventID, userID)
}

// GenerateTicket returns a PNG QR code of the ticket URL.
func (s *QRService) GenerateTicket(eventID, userID uint, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qrcode.Encode(s.TicketURL(eventID, userID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}
