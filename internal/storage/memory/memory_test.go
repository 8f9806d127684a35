package memory

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/storage"
)

func TestNewStore_SeedsRoles(t *testing.T) {
	store := NewStore()

	for _, name := range []domain.RoleName{domain.RoleUser, domain.RoleAdmin} {
		role, err := store.Roles().GetByName(context.Background(), name)
		if err != nil {
			t.Fatalf("GetByName(%s) error = %v", name, err)
		}
		if role.ID.IsZero() {
			t.Errorf("seeded role %s has no id", name)
		}
	}
}

func TestUserStore_CreateUniqueness(t *testing.T) {
	store := NewStore()

	user := &domain.User{Username: "alice", Email: "alice@example.com"}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID.IsZero() {
		t.Error("Create() should assign an id")
	}

	err := store.Users().Create(context.Background(), &domain.User{Username: "alice", Email: "other@example.com"})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("Create(duplicate username) error = %v, want ErrAlreadyExists", err)
	}

	err = store.Users().Create(context.Background(), &domain.User{Username: "other", Email: "alice@example.com"})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("Create(duplicate email) error = %v, want ErrAlreadyExists", err)
	}
}

func TestUserStore_GetByUsernameOrEmail(t *testing.T) {
	store := NewStore()

	user := &domain.User{Username: "alice", Email: "alice@example.com"}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	byName, err := store.Users().GetByUsernameOrEmail(context.Background(), "alice", "nope@example.com")
	if err != nil || byName.ID != user.ID {
		t.Errorf("GetByUsernameOrEmail(username) = %v, %v", byName, err)
	}

	byEmail, err := store.Users().GetByUsernameOrEmail(context.Background(), "nope", "alice@example.com")
	if err != nil || byEmail.ID != user.ID {
		t.Errorf("GetByUsernameOrEmail(email) = %v, %v", byEmail, err)
	}

	if _, err := store.Users().GetByUsernameOrEmail(context.Background(), "nope", "nope@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetByUsernameOrEmail(miss) error = %v, want ErrNotFound", err)
	}
}

func TestUserStore_UpdateUniqueness(t *testing.T) {
	store := NewStore()

	alice := &domain.User{Username: "alice", Email: "alice@example.com"}
	bob := &domain.User{Username: "bob", Email: "bob@example.com"}
	for _, u := range []*domain.User{alice, bob} {
		if err := store.Users().Create(context.Background(), u); err != nil {
			t.Fatalf("Create(%s) error = %v", u.Username, err)
		}
	}

	update := &domain.User{ID: bob.ID, Username: "alice", Email: "bob@example.com"}
	if err := store.Users().Update(context.Background(), update); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("Update(taken username) error = %v, want ErrAlreadyExists", err)
	}

	update = &domain.User{ID: bob.ID, Username: "bob", Email: "alice@example.com"}
	if err := store.Users().Update(context.Background(), update); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("Update(taken email) error = %v, want ErrAlreadyExists", err)
	}

	// Keeping your own unique fields is not a collision
	update = &domain.User{ID: bob.ID, Username: "bob", Email: "bob@example.com"}
	if err := store.Users().Update(context.Background(), update); err != nil {
		t.Errorf("Update(own fields) error = %v", err)
	}
}

func TestUserStore_GetByUsername(t *testing.T) {
	store := NewStore()

	user := &domain.User{Username: "alice", Email: "alice@example.com"}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.Users().GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("GetByUsername() id = %s, want %s", got.ID.Hex(), user.ID.Hex())
	}

	if _, err := store.Users().GetByUsername(context.Background(), "nobody"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetByUsername(miss) error = %v, want ErrNotFound", err)
	}
}

func TestUserStore_UpdateAndDelete(t *testing.T) {
	store := NewStore()

	user := &domain.User{Username: "alice", Email: "alice@example.com"}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	user.Username = "alice2"
	if err := store.Users().Update(context.Background(), user); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := store.Users().GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Username != "alice2" {
		t.Errorf("Username = %q, want alice2", got.Username)
	}

	if err := store.Users().Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Users().Delete(context.Background(), user.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Delete(again) error = %v, want ErrNotFound", err)
	}
}

func TestRoleStore_Uniqueness(t *testing.T) {
	store := NewStore()

	err := store.Roles().Create(context.Background(), &domain.Role{Name: domain.RoleAdmin})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("Create(duplicate name) error = %v, want ErrAlreadyExists", err)
	}

	moderator := &domain.Role{Name: "moderator"}
	if err := store.Roles().Create(context.Background(), moderator); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	moderator.Name = domain.RoleAdmin
	if err := store.Roles().Update(context.Background(), moderator); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("Update(to taken name) error = %v, want ErrAlreadyExists", err)
	}
}

func TestCategoryStore_GetByName(t *testing.T) {
	store := NewStore()

	category := &domain.Category{Name: "Tools"}
	if err := store.Categories().Create(context.Background(), category); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.Categories().GetByName(context.Background(), "Tools")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if got.ID != category.ID {
		t.Errorf("GetByName() id = %s, want %s", got.ID.Hex(), category.ID.Hex())
	}

	if _, err := store.Categories().GetByName(context.Background(), "Nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetByName(miss) error = %v, want ErrNotFound", err)
	}
}

func TestProductStore_GetAllByCategory(t *testing.T) {
	store := NewStore()
	tools := primitive.NewObjectID()
	toys := primitive.NewObjectID()

	for _, p := range []*domain.Product{
		{Name: "Hammer", CategoryID: tools},
		{Name: "Screwdriver", CategoryID: tools},
		{Name: "Ball", CategoryID: toys},
	} {
		if err := store.Products().Create(context.Background(), p); err != nil {
			t.Fatalf("Create(%s) error = %v", p.Name, err)
		}
	}

	products, err := store.Products().GetAllByCategory(context.Background(), tools)
	if err != nil {
		t.Fatalf("GetAllByCategory() error = %v", err)
	}
	if len(products) != 2 {
		t.Errorf("GetAllByCategory(tools) = %d products, want 2", len(products))
	}

	none, err := store.Products().GetAllByCategory(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetAllByCategory() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("GetAllByCategory(unknown) = %d products, want 0", len(none))
	}
}
