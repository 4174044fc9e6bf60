package repository

import (
	"time"

	"github.com/socioclube/portal/app/models"
	"gorm.io/gorm"
)

// eventRepository implements the EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository instance
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event in the database
func (r *eventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// GetByID retrieves an event by its ID
func (r *eventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Update updates an existing event in the database
func (r *eventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete soft deletes an event by its ID
func (r *eventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}

// List retrieves a paginated list of events, soonest first
func (r *eventRepository) List(offset, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Offset(offset).Limit(limit).Order("starts_at DESC").Find(&events).Error
	return events, err
}

// ListUpcoming retrieves events that have not started yet
func (r *eventRepository) ListUpcoming(limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("starts_at > ?", time.Now()).Order("starts_at ASC").Limit(limit).Find(&events).Error
	return events, err
}

// Count returns the total number of events
func (r *eventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Count(&count).Error
	return count, err
}

// CreateRegistration records one member's registration for an event
func (r *eventRepository) CreateRegistration(registration *models.EventRegistration) error {
	return r.db.Create(registration).Error
}

// GetRegistration retrieves the registration of one user for one event
func (r *eventRepository) GetRegistration(eventID, userID uint) (*models.EventRegistration, error) {
	var registration models.EventRegistration
	err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&registration).Error
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

// UpdateRegistration updates an existing registration
func (r *eventRepository) UpdateRegistration(registration *models.EventRegistration) error {
	return r.db.Save(registration).Error
}

// ListRegistrationsByEvent retrieves all registrations for one event
func (r *eventRepository) ListRegistrationsByEvent(eventID uint) ([]models.EventRegistration, error) {
	var registrations []models.EventRegistration
	err := r.db.Where("event_id = ?", eventID).Order("created_at ASC").Find(&registrations).Error
	return registrations, err
}

// ListRegistrationsByUser retrieves all registrations of one user
func (r *eventRepository) ListRegistrationsByUser(userID uint) ([]models.EventRegistration, error) {
	var registrations []models.EventRegistration
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&registrations).Error
	return registrations, err
}

// CountRegistrations returns the number of registrations for one event
func (r *eventRepository) CountRegistrations(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventRegistration{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
