package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chamathdew/hiruayurvedaresorts/internal/core/domain"
	"github.com/chamathdew/hiruayurvedaresorts/internal/core/ports"
)

const guestsCollection = "guests"

// GuestRepository persists guest records in MongoDB. Branch scoping is applied
// in the query filter, never as a post-hoc check.
type GuestRepository struct {
	coll *mongo.Collection
}

func NewGuestRepository(db *mongo.Database) *GuestRepository {
	return &GuestRepository{coll: db.Collection(guestsCollection)}
}

type mongoGuest struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	FullName         string             `bson:"full_name"`
	Nationality      string             `bson:"nationality,omitempty"`
	PassportNumber   string             `bson:"passport_number,omitempty"`
	PassportCopyURL  string             `bson:"passport_copy_url,omitempty"`
	DateOfBirth      *time.Time         `bson:"date_of_birth,omitempty"`
	Gender           string             `bson:"gender,omitempty"`
	ContactNumber    string             `bson:"contact_number,omitempty"`
	Email            string             `bson:"email,omitempty"`
	HotelBranch      string             `bson:"hotel_branch"`
	RoomNumber       string             `bson:"room_number,omitempty"`
	ArrivalDate      *time.Time         `bson:"arrival_date,omitempty"`
	DepartureDate    *time.Time         `bson:"departure_date,omitempty"`
	TreatmentPackage string             `bson:"treatment_package,omitempty"`
	SpecialNotes     string             `bson:"special_notes,omitempty"`
	PaymentStatus    string             `bson:"payment_status"`
	TotalAmount      float64            `bson:"total_amount"`
	AdvancePayment   float64            `bson:"advance_payment"`
	Balance          float64            `bson:"balance"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func toDoc(g *domain.Guest) mongoGuest {
	return mongoGuest{
		FullName:         g.FullName,
		Nationality:      g.Nationality,
		PassportNumber:   g.PassportNumber,
		PassportCopyURL:  g.PassportCopyURL,
		DateOfBirth:      g.DateOfBirth,
		Gender:           g.Gender,
		ContactNumber:    g.ContactNumber,
		Email:            g.Email,
		HotelBranch:      g.HotelBranch,
		RoomNumber:       g.RoomNumber,
		ArrivalDate:      g.ArrivalDate,
		DepartureDate:    g.DepartureDate,
		TreatmentPackage: g.TreatmentPackage,
		SpecialNotes:     g.SpecialNotes,
		PaymentStatus:    string(g.PaymentStatus),
		TotalAmount:      g.TotalAmount,
		AdvancePayment:   g.AdvancePayment,
		Balance:          g.Balance,
		CreatedAt:        g.CreatedAt.UTC(),
		UpdatedAt:        g.UpdatedAt.UTC(),
	}
}

func (mg mongoGuest) toDomain() domain.Guest {
	return domain.Guest{
		ID:               mg.ID.Hex(),
		FullName:         mg.FullName,
		Nationality:      mg.Nationality,
		PassportNumber:   mg.PassportNumber,
		PassportCopyURL:  mg.PassportCopyURL,
		DateOfBirth:      mg.DateOfBirth,
		Gender:           mg.Gender,
		ContactNumber:    mg.ContactNumber,
		Email:            mg.Email,
		HotelBranch:      mg.HotelBranch,
		RoomNumber:       mg.RoomNumber,
		ArrivalDate:      mg.ArrivalDate,
		DepartureDate:    mg.DepartureDate,
		TreatmentPackage: mg.TreatmentPackage,
		SpecialNotes:     mg.SpecialNotes,
		PaymentStatus:    domain.PaymentStatus(mg.PaymentStatus),
		TotalAmount:      mg.TotalAmount,
		AdvancePayment:   mg.AdvancePayment,
		Balance:          mg.Balance,
		CreatedAt:        mg.CreatedAt,
		UpdatedAt:        mg.UpdatedAt,
	}
}

// branchFilter returns the base query filter for a visibility scope.
func branchFilter(branch string) bson.M {
	if branch == "" {
		return bson.M{}
	}
	return bson.M{"hotel_branch": branch}
}

func (r *GuestRepository) Create(ctx context.Context, guest *domain.Guest) (*domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toDoc(guest))
	if err != nil {
		return nil, fmt.Errorf("insert guest: %w", err)
	}

	created := *guest
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *GuestRepository) FindByID(ctx context.Context, id string) (*domain.Guest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGuestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mg mongoGuest
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGuestNotFound
		}
		return nil, fmt.Errorf("find guest: %w", err)
	}

	guest := mg.toDomain()
	return &guest, nil
}

func (r *GuestRepository) List(ctx context.Context, branch string) ([]domain.Guest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, branchFilter(branch))
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer cursor.Close(ctx)

	guests := make([]domain.Guest, 0)
	for cursor.Next(ctx) {
		var mg mongoGuest
		if err := cursor.Decode(&mg); err != nil {
			return nil, fmt.Errorf("decode guest: %w", err)
		}
		guests = append(guests, mg.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

func (r *GuestRepository) Update(ctx context.Context, guest *domain.Guest) (*domain.Guest, error) {
	oid, err := primitive.ObjectIDFromHex(guest.ID)
	if err != nil {
		return nil, domain.ErrGuestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toDoc(guest))
	if err != nil {
		return nil, fmt.Errorf("update guest: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrGuestNotFound
	}
	return guest, nil
}

func (r *GuestRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGuestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGuestNotFound
	}
	return nil
}

// Stats computes the dashboard aggregate for a visibility scope. Revenue is
// summed server-side with an aggregation pipeline rather than loading every
// document.
func (r *GuestRepository) Stats(ctx context.Context, branch string, startOfDay time.Time) (*ports.GuestStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := branchFilter(branch)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count guests: %w", err)
	}

	arrivals, err := r.coll.CountDocuments(ctx, withField(filter, "arrival_date", bson.M{"$gte": startOfDay}))
	if err != nil {
		return nil, fmt.Errorf("count arrivals: %w", err)
	}

	departures, err := r.coll.CountDocuments(ctx, withField(filter, "departure_date", bson.M{"$gte": startOfDay}))
	if err != nil {
		return nil, fmt.Errorf("count departures: %w", err)
	}

	pipeline := []bson.M{
		{"$match": filter},
		{"$group": bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total_amount"}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var revenue float64
	if cursor.Next(ctx) {
		var row struct {
			Revenue float64 `bson:"revenue"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode revenue: %w", err)
		}
		revenue = row.Revenue
	}

	return &ports.GuestStats{
		TotalGuests:     total,
		TodayArrivals:   arrivals,
		TodayDepartures: departures,
		TotalRevenue:    revenue,
	}, nil
}

// EnsureIndexes creates the branch and date indexes backing list and stats queries.
func (r *GuestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "hotel_branch", Value: 1}}},
		{Keys: bson.D{{Key: "arrival_date", Value: 1}}},
		{Keys: bson.D{{Key: "departure_date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func withField(base bson.M, key string, value any) bson.M {
	out := bson.M{key: value}
	for k, v := range base {
		out[k] = v
	}
	return out
}
