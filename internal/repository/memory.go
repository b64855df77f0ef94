package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brennosantos/eventos/internal/models"
)

// MemoryStore keeps everything in maps behind a mutex. It backs the service
// tests and is a drop-in for running without Postgres.
type MemoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	roles  map[uuid.UUID]models.Role
	users  map[uuid.UUID]models.User
	events map[uuid.UUID]models.Event
	orders map[uuid.UUID]models.Order

	orderWrites map[uuid.UUID]int
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		roles:       make(map[uuid.UUID]models.Role),
		users:       make(map[uuid.UUID]models.User),
		events:      make(map[uuid.UUID]models.Event),
		orders:      make(map[uuid.UUID]models.Order),
		orderWrites: make(map[uuid.UUID]int),
	}
	for _, name := range []string{models.RoleOrganizer, models.RoleAttendee, models.RoleAdmin} {
		role := models.Role{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
		s.roles[role.ID] = role
	}
	return s
}

func (s *MemoryStore) Users() UserRepository   { return &memoryUserRepository{store: s} }
func (s *MemoryStore) Events() EventRepository { return &memoryEventRepository{store: s} }
func (s *MemoryStore) Orders() OrderRepository { return &memoryOrderRepository{store: s} }
func (s *MemoryStore) Roles() RoleRepository   { return &memoryRoleRepository{store: s} }

// Transaction serializes whole multi-write operations. Failed transactions
// are not rolled back; callers validate before mutating, the same contract
// the original in-memory repositories offered.
func (s *MemoryStore) Transaction(ctx context.Context, fn func(Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

// OrderWrites reports how many times an order has been written, counting its
// creation. Tests use it to check that cascades persist each order once.
func (s *MemoryStore) OrderWrites(id uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orderWrites[id]
}

func cloneOrder(order models.Order) models.Order {
	order.Tickets = append([]models.Ticket(nil), order.Tickets...)
	order.User = nil
	order.Event = nil
	return order
}

type memoryUserRepository struct {
	store *MemoryStore
}

func (r *memoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	stored := *user
	stored.Orders = nil
	r.store.users[stored.ID] = stored
	return nil
}

func (r *memoryUserRepository) Save(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[user.ID]; !ok {
		return ErrNotFound
	}
	stored := *user
	stored.Orders = nil
	r.store.users[stored.ID] = stored
	return nil
}

func (r *memoryUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	stored, ok := r.store.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := stored
	user.Role = r.store.roles[user.RoleID]
	for _, order := range r.store.orders {
		if order.UserID == id {
			user.Orders = append(user.Orders, cloneOrder(order))
		}
	}
	sort.Slice(user.Orders, func(i, j int) bool {
		return user.Orders[i].CreatedAt.After(user.Orders[j].CreatedAt)
	})
	return &user, nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, stored := range r.store.users {
		if strings.EqualFold(stored.Email, email) {
			user := stored
			user.Role = r.store.roles[user.RoleID]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	users := make([]models.User, 0, len(r.store.users))
	for _, stored := range r.store.users {
		user := stored
		user.Role = r.store.roles[user.RoleID]
		users = append(users, user)
	}
	return users, nil
}

func (r *memoryUserRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[id]; !ok {
		return false, nil
	}
	delete(r.store.users, id)
	return true, nil
}

type memoryEventRepository struct {
	store *MemoryStore
}

func (r *memoryEventRepository) Create(ctx context.Context, event *models.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	stored := *event
	stored.Organizer = nil
	r.store.events[stored.ID] = stored
	return nil
}

func (r *memoryEventRepository) Save(ctx context.Context, event *models.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[event.ID]; !ok {
		return ErrNotFound
	}
	stored := *event
	stored.Organizer = nil
	r.store.events[stored.ID] = stored
	return nil
}

func (r *memoryEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	stored, ok := r.store.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	event := stored
	return &event, nil
}

func (r *memoryEventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	events := make([]models.Event, 0, len(r.store.events))
	for _, event := range r.store.events {
		events = append(events, event)
	}
	sortEventsNewestFirst(events)
	return events, nil
}

func (r *memoryEventRepository) FindByTitleContaining(ctx context.Context, term string) ([]models.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var events []models.Event
	for _, event := range r.store.events {
		if strings.Contains(strings.ToLower(event.Title), strings.ToLower(term)) {
			events = append(events, event)
		}
	}
	sortEventsNewestFirst(events)
	return events, nil
}

func (r *memoryEventRepository) FindByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]models.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var events []models.Event
	for _, event := range r.store.events {
		if event.OrganizerID == organizerID {
			events = append(events, event)
		}
	}
	sortEventsNewestFirst(events)
	return events, nil
}

func (r *memoryEventRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.events[id]; !ok {
		return false, nil
	}
	delete(r.store.events, id)
	return true, nil
}

func (r *memoryEventRepository) DecrementAvailable(ctx context.Context, id uuid.UUID, qty int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	event, ok := r.store.events[id]
	if !ok {
		return 0, ErrNotFound
	}
	if event.Status != models.EventStatusActive || event.TicketsAvailable < qty {
		return 0, ErrInsufficientStock
	}
	event.TicketsAvailable -= qty
	r.store.events[id] = event
	return event.TicketsAvailable, nil
}

func (r *memoryEventRepository) RestoreAvailable(ctx context.Context, id uuid.UUID, qty int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	event, ok := r.store.events[id]
	if !ok {
		return ErrNotFound
	}
	event.TicketsAvailable += qty
	r.store.events[id] = event
	return nil
}

func sortEventsNewestFirst(events []models.Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
}

type memoryOrderRepository struct {
	store *MemoryStore
}

func (r *memoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.store.orders[order.ID] = cloneOrder(*order)
	r.store.orderWrites[order.ID]++
	return nil
}

func (r *memoryOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	order, ok := r.store.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	order.Status = status
	r.store.orders[orderID] = order
	r.store.orderWrites[orderID]++
	return nil
}

func (r *memoryOrderRepository) FindByUserAndID(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	stored, ok := r.store.orders[orderID]
	if !ok || stored.UserID != userID {
		return nil, ErrNotFound
	}
	order := cloneOrder(stored)
	return &order, nil
}

func (r *memoryOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var orders []models.Order
	for _, order := range r.store.orders {
		if order.UserID == userID {
			orders = append(orders, cloneOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *memoryOrderRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]models.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var orders []models.Order
	for _, order := range r.store.orders {
		if order.EventID == eventID {
			orders = append(orders, cloneOrder(order))
		}
	}
	return orders, nil
}

func (r *memoryOrderRepository) FindTicketByID(ctx context.Context, ticketID uuid.UUID) (*models.Ticket, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, order := range r.store.orders {
		for _, ticket := range order.Tickets {
			if ticket.ID == ticketID {
				found := ticket
				parent := cloneOrder(order)
				found.Order = &parent
				if event, ok := r.store.events[ticket.EventID]; ok {
					ev := event
					found.Event = &ev
				}
				return &found, nil
			}
		}
	}
	return nil, ErrNotFound
}

func (r *memoryOrderRepository) MarkTicketCheckedIn(ctx context.Context, ticketID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for orderID, order := range r.store.orders {
		for i := range order.Tickets {
			if order.Tickets[i].ID == ticketID {
				order.Tickets[i].CheckedIn = true
				r.store.orders[orderID] = order
				return nil
			}
		}
	}
	return ErrNotFound
}

type memoryRoleRepository struct {
	store *MemoryStore
}

func (r *memoryRoleRepository) Save(ctx context.Context, role *models.Role) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	r.store.roles[role.ID] = *role
	return nil
}

func (r *memoryRoleRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, role := range r.store.roles {
		if role.Name == name {
			found := role
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
