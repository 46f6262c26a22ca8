package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"docassist/database"
	"docassist/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the lookup indexes plus the two uniqueness guards:
// one active appointment per (user, doctor) pair, and one appointment per
// checkout session.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "doctor_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"status": bson.M{"$in": models.ActiveStatuses}},
			),
		},
		{
			Keys: bson.D{{Key: "checkout_session_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"checkout_session_id": bson.M{"$type": "string"}},
			),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ConfirmBySession upserts the confirmed appointment keyed on the checkout
// session id. Racing webhook and verify-poll callers both land on the same
// document; exactly one insert happens and both observe the final row.
func (r *MongoAppointmentRepo) ConfirmBySession(sessionID string, appt *models.Appointment) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"checkout_session_id": sessionID}
	update := bson.M{
		"$set": bson.M{
			"status":     models.StatusConfirmed,
			"paid":       true,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"id":                  appt.ID,
			"user_id":             appt.UserID,
			"doctor_id":           appt.DoctorID,
			"date":                appt.Date,
			"time":                appt.Time,
			"reason":              appt.Reason,
			"checkout_session_id": sessionID,
			"created_at":          now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var result models.Appointment
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to confirm appointment for session %s: %w", sessionID, err)
	}
	return &result, nil
}

// Update modifies an existing appointment document.
func (r *MongoAppointmentRepo) Update(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	appt.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": appt.ID}, bson.M{"$set": appt})
	if err != nil {
		return fmt.Errorf("failed to update appointment with id %s: %w", appt.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", appt.ID)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID. Returns nil when no
// appointment matches.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	return r.findOne(bson.M{"id": id})
}

// GetBySessionID retrieves the appointment created for a checkout session.
func (r *MongoAppointmentRepo) GetBySessionID(sessionID string) (*models.Appointment, error) {
	return r.findOne(bson.M{"checkout_session_id": sessionID})
}

// GetActiveByUserAndDoctor retrieves the booked or confirmed appointment
// between a user and a doctor, if any.
func (r *MongoAppointmentRepo) GetActiveByUserAndDoctor(userID, doctorID string) (*models.Appointment, error) {
	return r.findOne(bson.M{
		"user_id":   userID,
		"doctor_id": doctorID,
		"status":    bson.M{"$in": models.ActiveStatuses},
	})
}

func (r *MongoAppointmentRepo) findOne(filter bson.M) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	return &appt, nil
}

// ListByUser retrieves all appointments belonging to a user.
func (r *MongoAppointmentRepo) ListByUser(userID string) ([]models.Appointment, error) {
	return r.findMany(bson.M{"user_id": userID})
}

// ListAll retrieves every appointment.
func (r *MongoAppointmentRepo) ListAll() ([]models.Appointment, error) {
	return r.findMany(bson.M{})
}

func (r *MongoAppointmentRepo) findMany(filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appts = append(appts, a)
	}
	return appts, nil
}

// CountByUser counts all appointments owned by a user, any status.
func (r *MongoAppointmentRepo) CountByUser(userID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments for user %s: %w", userID, err)
	}
	return n, nil
}

// CountActiveByDoctor counts booked or confirmed appointments referencing
// a doctor.
func (r *MongoAppointmentRepo) CountActiveByDoctor(doctorID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"doctor_id": doctorID, "status": bson.M{"$in": models.ActiveStatuses}}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments for doctor %s: %w", doctorID, err)
	}
	return n, nil
}
