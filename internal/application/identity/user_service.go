package identity

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailcore/backend/internal/application/entitlement"
	"github.com/retailcore/backend/internal/domain/identity"
	"github.com/retailcore/backend/internal/domain/shared"
	"github.com/retailcore/backend/internal/infrastructure/persistence/partition"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// maxLoginScan bounds how many user records a login attempt will scan.
// User counts are plan-limited, so tenants stay far below this.
const maxLoginScan = 1000

// UserRecord is the stored shape of a tenant user document
type UserRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore is the slice of the partition accessor the user service needs
type UserStore interface {
	Insert(ctx context.Context, tenantID, logicalName, id string, doc any) error
	List(ctx context.Context, tenantID, logicalName string, limit int) ([]partition.Document, error)
}

// UserService manages tenant users stored in the per-tenant users partition
type UserService struct {
	store  UserStore
	guard  entitlement.LimitGuard
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(store UserStore, guard entitlement.LimitGuard, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{store: store, guard: guard, logger: logger}
}

// CreateUserInput contains input for creating a tenant user
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
}

// CreateUser adds a user to the tenant after a user-limit check. A denied
// decision is returned with a nil record and a nil error: hitting the
// ceiling is a normal outcome, not a fault.
func (s *UserService) CreateUser(ctx context.Context, tenantRef string, input CreateUserInput) (*UserRecord, entitlement.LimitDecision, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, entitlement.LimitDecision{}, shared.NewDomainError("INVALID_USER", "Email is required")
	}
	if input.Password == "" {
		return nil, entitlement.LimitDecision{}, shared.NewDomainError("INVALID_USER", "Password is required")
	}

	decision, err := s.guard.CheckLimit(ctx, tenantRef, identity.ResourceUsers, 1)
	if err != nil {
		return nil, entitlement.LimitDecision{}, err
	}
	if !decision.Allowed {
		return nil, decision, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, entitlement.LimitDecision{}, err
	}

	record := &UserRecord{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, tenantRef, identity.ResourceUsers.LogicalName(), record.ID, record); err != nil {
		return nil, entitlement.LimitDecision{}, err
	}

	s.logger.Info("User created",
		zap.String("tenant_ref", tenantRef),
		zap.String("user_id", record.ID))

	return record, decision, nil
}

// ListUsers returns the tenant's users, newest first
func (s *UserService) ListUsers(ctx context.Context, tenantRef string, limit int) ([]UserRecord, error) {
	docs, err := s.store.List(ctx, tenantRef, identity.ResourceUsers.LogicalName(), limit)
	if err != nil {
		return nil, err
	}

	users := make([]UserRecord, 0, len(docs))
	for _, doc := range docs {
		var record UserRecord
		if err := json.Unmarshal(doc.Doc, &record); err != nil {
			s.logger.Warn("Skipping undecodable user document",
				zap.String("tenant_ref", tenantRef),
				zap.String("doc_id", doc.ID))
			continue
		}
		users = append(users, record)
	}
	return users, nil
}

// Authenticate verifies a user's credentials against the tenant's users
// partition. Unknown email and wrong password are indistinguishable to
// the caller.
func (s *UserService) Authenticate(ctx context.Context, tenantRef, email, password string) (*UserRecord, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	users, err := s.ListUsers(ctx, tenantRef, maxLoginScan)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(password)) != nil {
			break
		}
		return &users[i], nil
	}
	return nil, shared.ErrUnauthorized
}
