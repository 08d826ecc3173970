package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"contract-service/internal/db"
	"contract-service/internal/models"
)

// memStore is an in-memory stand-in for the data store, shared by the
// component tests in this package.
type memStore struct {
	mu            sync.Mutex
	contracts     map[int64]*models.Contract
	notifications map[uuid.UUID]*models.Notification
	tasks         map[uuid.UUID]*models.DeliveryTask
	prefs         map[prefKey]models.PreferenceRecord

	contractWrites int // MarkContractExpired calls that changed a row
	listErr        error
	createNotifErr error
	createTaskErr  error
	writeOrder     []string // "notification" / "task" in persistence order
}

type prefKey struct {
	userID int64
	kind   models.EventKind
}

func newMemStore() *memStore {
	return &memStore{
		contracts:     make(map[int64]*models.Contract),
		notifications: make(map[uuid.UUID]*models.Notification),
		tasks:         make(map[uuid.UUID]*models.DeliveryTask),
		prefs:         make(map[prefKey]models.PreferenceRecord),
	}
}

func (m *memStore) addContract(c models.Contract) {
	m.mu.Lock()
	defer m.mu.Unlock()
	contract := c
	m.contracts[c.ID] = &contract
}

func (m *memStore) ListActiveContracts(ctx context.Context) ([]models.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Contract
	for _, c := range m.contracts {
		if !c.Terminal() {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memStore) MarkContractExpired(ctx context.Context, contractID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contracts[contractID]
	if !ok {
		return nil
	}
	if !c.Terminal() {
		c.Status = models.ContractExpired
		m.contractWrites++
	}
	return nil
}

func (m *memStore) CreateNotification(ctx context.Context, n models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createNotifErr != nil {
		return m.createNotifErr
	}
	notif := n
	m.notifications[n.ID] = &notif
	m.writeOrder = append(m.writeOrder, "notification")
	return nil
}

func (m *memStore) GetNotification(ctx context.Context, id uuid.UUID) (models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return models.Notification{}, db.ErrNotFound
	}
	return *n, nil
}

func (m *memStore) DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, n := range m.notifications {
		if n.Read && n.CreatedAt.Before(cutoff) {
			for tid, t := range m.tasks {
				if t.NotificationID == id {
					delete(m.tasks, tid)
				}
			}
			delete(m.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memStore) CreateDeliveryTask(ctx context.Context, t models.DeliveryTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createTaskErr != nil {
		return m.createTaskErr
	}
	task := t
	m.tasks[t.ID] = &task
	m.writeOrder = append(m.writeOrder, "task")
	return nil
}

func (m *memStore) PendingDeliveryTasks(ctx context.Context) ([]models.DeliveryTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DeliveryTask
	for _, t := range m.tasks {
		if t.Status == models.TaskPending && t.Attempts < models.MaxDeliveryAttempts {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memStore) MarkTaskSent(ctx context.Context, id uuid.UUID, processedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.Status != models.TaskPending {
		return nil
	}
	t.Status = models.TaskSent
	t.ProcessedAt = &processedAt
	return nil
}

func (m *memStore) RecordTaskFailure(ctx context.Context, id uuid.UUID, attempts int, lastError string, processedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.Status != models.TaskPending {
		return nil
	}
	t.Attempts = attempts
	t.LastError = lastError
	if attempts >= models.MaxDeliveryAttempts {
		t.Status = models.TaskFailed
		t.ProcessedAt = &processedAt
	}
	return nil
}

func (m *memStore) GetPreference(ctx context.Context, userID int64, kind models.EventKind) (models.PreferenceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prefs[prefKey{userID, kind}]
	if !ok {
		return models.PreferenceRecord{}, db.ErrNotFound
	}
	return p, nil
}

func (m *memStore) UpsertPreference(ctx context.Context, p models.PreferenceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs[prefKey{p.UserID, p.Kind}] = p
	return nil
}

func (m *memStore) tasksFor(notificationID uuid.UUID) []models.DeliveryTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DeliveryTask
	for _, t := range m.tasks {
		if t.NotificationID == notificationID {
			out = append(out, *t)
		}
	}
	return out
}

func (m *memStore) allNotifications() []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.notifications {
		out = append(out, *n)
	}
	return out
}

func (m *memStore) allTasks() []models.DeliveryTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DeliveryTask
	for _, t := range m.tasks {
		out = append(out, *t)
	}
	return out
}

// recordingSink captures events without persisting anything.
type recordingSink struct {
	mu     sync.Mutex
	events []models.NotificationEvent
	err    error
}

func (r *recordingSink) CreateFromEvent(ctx context.Context, ev models.NotificationEvent) (models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return models.Notification{}, r.err
	}
	r.events = append(r.events, ev)
	return models.Notification{}, nil
}

func (r *recordingSink) kinds() []models.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.EventKind
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}
