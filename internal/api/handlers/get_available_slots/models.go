package get_available_slots

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	OwnerID  string         `json:"ownerId"`
	Date     string         `json:"date"`
	Timezone string         `json:"timezone"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	StartUTC        string `json:"startUtc"`
	EndUTC          string `json:"endUtc"`
	LocalStartTime  string `json:"localStartTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// ToUseCaseRequest формирует запрос к use case из параметров URL
func ToUseCaseRequest(ownerID, dateStr, onlyAvailableStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		OwnerID: ownerID,
		Date:    date,
	}

	if onlyAvailableStr != "" {
		onlyAvailable, err := strconv.ParseBool(onlyAvailableStr)
		if err != nil {
			return nil, fmt.Errorf("invalid onlyAvailable value: %w", err)
		}
		req.OnlyAvailable = onlyAvailable
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	result := &SlotsResponse{
		OwnerID:  resp.OwnerID,
		Date:     resp.Date.Format(domain.DateFormat),
		Timezone: resp.Timezone,
		Slots:    make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartUTC:        slot.StartUTC.UTC().Format(time.RFC3339),
			EndUTC:          slot.EndUTC.UTC().Format(time.RFC3339),
			LocalStartTime:  slot.LocalStartTime,
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		})
	}

	return result
}
