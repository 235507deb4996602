// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"pharmaflow-backend/models"
	"pharmaflow-backend/store"
	"pharmaflow-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const tableReminderLogs = "reminder_logs"

// ReminderService notifies clients about tomorrow's appointments via
// Twilio. Every attempt is logged to the store; failures are never
// retried.
type ReminderService struct {
	store  store.Store
	client *twilio.RestClient
}

func NewReminderService(st store.Store) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		store: st,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the daily reminder sweep every morning.
func (s *ReminderService) StartScheduler() {
	c := cron.New()
	c.AddFunc("0 8 * * *", s.SendDailyReminders)
	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDailyReminders processes every Scheduled appointment for
// tomorrow.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now()).AddDate(0, 0, 1).Format(dateLayout)
	rows, err := s.store.Select(tableAppointments, store.Filters{
		"date":   tomorrow,
		"status": models.StatusScheduled,
	})
	if err != nil {
		log.Printf("Failed to fetch appointments for %s: %v", tomorrow, err)
		return
	}

	for _, row := range rows {
		var appt models.Appointment
		if err := store.Decode(row, &appt); err != nil {
			log.Printf("Skipping malformed appointment row: %v", err)
			continue
		}
		s.remind(appt)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) remind(appt models.Appointment) {
	if appt.ClientID == nil {
		return
	}

	clientName, phone, err := s.clientContact(*appt.ClientID)
	if err != nil {
		log.Printf("Appointment %d: failed to load client: %v", appt.ID, err)
		return
	}

	serviceName, err := s.serviceName(appt.ServiceID)
	if err != nil {
		log.Printf("Appointment %d: failed to load service: %v", appt.ID, err)
		return
	}

	message := fmt.Sprintf("Hi %s! A reminder of your %s appointment tomorrow (%s) at %s.",
		clientName, serviceName, appt.Date, appt.StartTime)

	if !utils.ValidatePhone(phone) {
		log.Printf("Appointment %d: client phone %q is not sendable", appt.ID, phone)
		s.logReminder(appt, "none", message, "skipped", "invalid phone number")
		return
	}

	// WhatsApp when the phone is E.164 with '+', SMS otherwise.
	channel := "sms"
	to := phone
	params := &twilioApi.CreateMessageParams{}
	if phone[0] == '+' {
		channel = "whatsapp"
		to = "whatsapp:" + phone
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}
	params.SetTo(to)
	params.SetBody(message)

	status := "sent"
	errorMsg := ""
	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send reminder for appointment %d: %v", appt.ID, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent for appointment %d, SID: %s", appt.ID, *resp.Sid)
	}

	s.logReminder(appt, channel, message, status, errorMsg)
}

func (s *ReminderService) logReminder(appt models.Appointment, channel, message, status, errorMsg string) {
	clientID := 0
	if appt.ClientID != nil {
		clientID = *appt.ClientID
	}
	_, err := s.store.Insert(tableReminderLogs, store.Record{
		"appointment_id": appt.ID,
		"client_id":      clientID,
		"channel":        channel,
		"message":        message,
		"status":         status,
		"error_message":  errorMsg,
		"sent_at":        time.Now().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("Failed to log reminder for appointment %d: %v", appt.ID, err)
	}
}

func (s *ReminderService) clientContact(clientID int) (string, string, error) {
	rows, err := s.store.Select(tableClients, store.Filters{"id": clientID})
	if err != nil {
		return "", "", err
	}
	if len(rows) == 0 {
		return "", "", fmt.Errorf("clients: no row with id %d", clientID)
	}
	var client models.Client
	if err := store.Decode(rows[0], &client); err != nil {
		return "", "", err
	}
	return client.Name, client.Phone, nil
}

func (s *ReminderService) serviceName(serviceID int) (string, error) {
	rows, err := s.store.Select(tableServices, store.Filters{"id": serviceID})
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return fmt.Sprintf("service %d", serviceID), nil
	}
	name, _ := rows[0]["name"].(string)
	return name, nil
}
