package models

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo implements TrainRepo, TicketRepo and UserRepo with in-memory maps.
// Used by tests and local development without a MongoDB instance. The mutex
// gives the same per-document atomicity the conditional Mongo updates give.
type MemoryRepo struct {
	mu      sync.RWMutex
	trains  map[primitive.ObjectID]*Train
	tickets map[primitive.ObjectID]*Ticket
	users   map[primitive.ObjectID]*User
	byEmail map[string]primitive.ObjectID
	byPNR   map[string]primitive.ObjectID
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		trains:  make(map[primitive.ObjectID]*Train),
		tickets: make(map[primitive.ObjectID]*Ticket),
		users:   make(map[primitive.ObjectID]*User),
		byEmail: make(map[string]primitive.ObjectID),
		byPNR:   make(map[string]primitive.ObjectID),
	}
}

func cloneTrain(t *Train) *Train {
	cp := *t
	cp.Classes = append([]ClassInventory(nil), t.Classes...)
	cp.Days = append([]string(nil), t.Days...)
	return &cp
}

func (r *MemoryRepo) CreateTrain(ctx context.Context, train *Train) (*Train, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	train.BeforeCreate()
	for _, existing := range r.trains {
		if existing.TrainNumber == train.TrainNumber {
			return nil, ErrDuplicateTrainNumber
		}
	}
	r.trains[train.ID] = cloneTrain(train)
	return train, nil
}

func (r *MemoryRepo) GetTrainByID(ctx context.Context, id primitive.ObjectID) (*Train, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	train, ok := r.trains[id]
	if !ok {
		return nil, ErrTrainNotFound
	}
	return cloneTrain(train), nil
}

func (r *MemoryRepo) SearchTrains(ctx context.Context, source, destination string) ([]*Train, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := []*Train{}
	for _, train := range r.trains {
		if !train.Active {
			continue
		}
		if source != "" && !strings.Contains(strings.ToLower(train.Source), strings.ToLower(source)) {
			continue
		}
		if destination != "" && !strings.Contains(strings.ToLower(train.Destination), strings.ToLower(destination)) {
			continue
		}
		matches = append(matches, cloneTrain(train))
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].TrainNumber < matches[j].TrainNumber })
	return matches, nil
}

func (r *MemoryRepo) UpdateTrain(ctx context.Context, id primitive.ObjectID, train *Train) (*Train, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.trains[id]
	if !ok {
		return nil, ErrTrainNotFound
	}
	for otherID, other := range r.trains {
		if otherID != id && other.TrainNumber == train.TrainNumber {
			return nil, ErrDuplicateTrainNumber
		}
	}

	updated := cloneTrain(train)
	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	r.trains[id] = updated
	return cloneTrain(updated), nil
}

func (r *MemoryRepo) DeleteTrain(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trains[id]; !ok {
		return ErrTrainNotFound
	}
	delete(r.trains, id)
	return nil
}

func (r *MemoryRepo) ReserveSeat(ctx context.Context, trainID primitive.ObjectID, classType string) (*Train, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	train, ok := r.trains[trainID]
	if !ok || !train.Active {
		return nil, ErrTrainNotFound
	}
	cls := train.Class(classType)
	if cls == nil {
		return nil, ErrClassNotFound
	}
	if cls.AvailableSeats <= 0 {
		return nil, ErrSeatsUnavailable
	}
	cls.AvailableSeats--
	return cloneTrain(train), nil
}

func (r *MemoryRepo) ReleaseSeat(ctx context.Context, trainID primitive.ObjectID, classType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	train, ok := r.trains[trainID]
	if !ok {
		return ErrTrainNotFound
	}
	cls := train.Class(classType)
	if cls == nil {
		return ErrClassNotFound
	}
	if cls.AvailableSeats < cls.TotalSeats {
		cls.AvailableSeats++
	}
	return nil
}

func (r *MemoryRepo) CreateTicket(ctx context.Context, ticket *Ticket) (*Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ticket.BeforeCreate(); err != nil {
		return nil, err
	}
	if _, exists := r.byPNR[ticket.PNR]; exists {
		return nil, ErrValidation
	}
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	r.byPNR[ticket.PNR] = ticket.ID
	return ticket, nil
}

func (r *MemoryRepo) GetTicketByID(ctx context.Context, id primitive.ObjectID) (*Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	cp := *ticket
	return &cp, nil
}

func (r *MemoryRepo) ListTicketsByUser(ctx context.Context, userID primitive.ObjectID) ([]*Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tickets := []*Ticket{}
	for _, ticket := range r.tickets {
		if ticket.UserID == userID {
			cp := *ticket
			tickets = append(tickets, &cp)
		}
	}
	sortTicketsNewestFirst(tickets)
	return tickets, nil
}

func (r *MemoryRepo) ListAllTickets(ctx context.Context) ([]*Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tickets := []*Ticket{}
	for _, ticket := range r.tickets {
		cp := *ticket
		tickets = append(tickets, &cp)
	}
	sortTicketsNewestFirst(tickets)
	return tickets, nil
}

func sortTicketsNewestFirst(tickets []*Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
}

func (r *MemoryRepo) MarkCancelled(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return ErrTicketNotFound
	}
	if ticket.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	ticket.Status = StatusCancelled
	return nil
}

func (r *MemoryRepo) CountBookedByTrain(ctx context.Context, trainID primitive.ObjectID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, ticket := range r.tickets {
		if ticket.TrainID == trainID && ticket.Status == StatusBooked {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.BeforeCreate()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, ErrEmailTaken
	}
	cp := *user
	r.users[user.ID] = &cp
	r.byEmail[user.Email] = user.ID
	return user, nil
}

func (r *MemoryRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *r.users[id]
	return &cp, nil
}

func (r *MemoryRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}
