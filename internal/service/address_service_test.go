package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/meuprecocerto/precificacao/internal/events"
	"github.com/meuprecocerto/precificacao/internal/model"
)

func newAddressService() (*AddressService, *fakeAddressRepo, *recordingPublisher) {
	repo := newFakeAddressRepo()
	publisher := &recordingPublisher{}
	svc := NewAddressService(repo, publisher, zerolog.Nop())
	svc.now = tickingClock()
	return svc, repo, publisher
}

func addressInput(user model.Principal, street string) AddressInput {
	return AddressInput{
		Type:     model.AddressTypeResidential,
		CEP:      "01310-100",
		Street:   street,
		Number:   "1000",
		District: "Bela Vista",
		City:     "São Paulo",
		State:    "sp",
		User:     user,
	}
}

func createAddress(t *testing.T, svc *AddressService, user model.Principal, street string) *model.Address {
	t.Helper()
	address, err := svc.Create(context.Background(), addressInput(user, street))
	if err != nil {
		t.Fatalf("create %s: %v", street, err)
	}
	return address
}

func TestAddressService_FirstAddressIsPrincipal(t *testing.T) {
	svc, repo, publisher := newAddressService()
	a := createAddress(t, svc, operator, "Av. Paulista")
	b := createAddress(t, svc, operator, "Rua Augusta")

	if !a.Principal || b.Principal {
		t.Fatalf("expected only the first address principal: a=%v b=%v", a.Principal, b.Principal)
	}
	if a.CEP != "01310100" || a.State != "SP" {
		t.Fatalf("expected normalized address, got %+v", a)
	}
	if got := repo.principals(operator.UserID); len(got) != 1 || got[0] != a.ID {
		t.Fatalf("expected a as single principal, got %v", got)
	}
	if publisher.count(resourceAddress) != 2 {
		t.Fatalf("expected 2 address events")
	}
}

func TestAddressService_SetPrincipal(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAddressService()
	a := createAddress(t, svc, operator, "Av. Paulista")
	b := createAddress(t, svc, operator, "Rua Augusta")

	updated, err := svc.SetPrincipal(ctx, operator, b.ID)
	if err != nil {
		t.Fatalf("set principal: %v", err)
	}
	if !updated.Principal {
		t.Fatalf("expected b principal")
	}
	got := repo.principals(operator.UserID)
	if len(got) != 1 || got[0] != b.ID {
		t.Fatalf("expected exactly b principal, got %v", got)
	}
	if repo.addresses[a.ID].Principal {
		t.Fatalf("a must lose principal")
	}

	if _, err := svc.SetPrincipal(ctx, operator, b.ID); err != nil {
		t.Fatalf("repeat must be a no-op: %v", err)
	}
	if len(repo.principals(operator.UserID)) != 1 {
		t.Fatalf("repeat must keep one principal")
	}
}

// replayAddresses applies the published address events the way a websocket
// client does: replace by id, drop on delete.
func replayAddresses(t *testing.T, publisher *recordingPublisher) map[uuid.UUID]model.Address {
	t.Helper()
	mirror := make(map[uuid.UUID]model.Address)
	for _, e := range publisher.events {
		if e.Resource != resourceAddress {
			continue
		}
		address, ok := e.Data.(model.Address)
		if !ok {
			t.Fatalf("address event carries %T", e.Data)
		}
		if e.Action == events.ActionDelete {
			delete(mirror, address.ID)
			continue
		}
		mirror[address.ID] = address
	}
	return mirror
}

func mirrorPrincipals(mirror map[uuid.UUID]model.Address) []uuid.UUID {
	var ids []uuid.UUID
	for id, address := range mirror {
		if address.Principal {
			ids = append(ids, id)
		}
	}
	return ids
}

func TestAddressService_EventsAnnounceDemotedPrincipal(t *testing.T) {
	ctx := context.Background()

	t.Run("set principal", func(t *testing.T) {
		svc, _, publisher := newAddressService()
		createAddress(t, svc, operator, "Av. Paulista")
		b := createAddress(t, svc, operator, "Rua Augusta")

		if _, err := svc.SetPrincipal(ctx, operator, b.ID); err != nil {
			t.Fatalf("set principal: %v", err)
		}
		got := mirrorPrincipals(replayAddresses(t, publisher))
		if len(got) != 1 || got[0] != b.ID {
			t.Fatalf("expected b as the only principal seen by subscribers, got %v", got)
		}
	})

	t.Run("create as principal", func(t *testing.T) {
		svc, _, publisher := newAddressService()
		createAddress(t, svc, operator, "Av. Paulista")

		input := addressInput(operator, "Rua Oscar Freire")
		input.Principal = true
		c, err := svc.Create(ctx, input)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got := mirrorPrincipals(replayAddresses(t, publisher))
		if len(got) != 1 || got[0] != c.ID {
			t.Fatalf("expected c as the only principal seen by subscribers, got %v", got)
		}
	})

	t.Run("update as principal", func(t *testing.T) {
		svc, _, publisher := newAddressService()
		createAddress(t, svc, operator, "Av. Paulista")
		b := createAddress(t, svc, operator, "Rua Augusta")

		input := addressInput(operator, "Rua Augusta")
		input.Principal = true
		if _, err := svc.Update(ctx, b.ID, input); err != nil {
			t.Fatalf("update: %v", err)
		}
		got := mirrorPrincipals(replayAddresses(t, publisher))
		if len(got) != 1 || got[0] != b.ID {
			t.Fatalf("expected b as the only principal seen by subscribers, got %v", got)
		}
	})

	t.Run("delete principal", func(t *testing.T) {
		svc, repo, publisher := newAddressService()
		a := createAddress(t, svc, operator, "Av. Paulista")
		createAddress(t, svc, operator, "Rua Augusta")

		if err := svc.Delete(ctx, operator, a.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		got := mirrorPrincipals(replayAddresses(t, publisher))
		want := repo.principals(operator.UserID)
		if len(got) != 1 || len(want) != 1 || got[0] != want[0] {
			t.Fatalf("subscribers see %v, store has %v", got, want)
		}
	})
}

func TestAddressService_DeleteConcurrentlyRemoved(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAddressService()
	a := createAddress(t, svc, operator, "Av. Paulista")

	repo.failWrite = gorm.ErrRecordNotFound
	if err := svc.Delete(ctx, operator, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddressService_CreateAsPrincipal(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAddressService()
	createAddress(t, svc, operator, "Av. Paulista")

	input := addressInput(operator, "Rua Oscar Freire")
	input.Principal = true
	c, err := svc.Create(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got := repo.principals(operator.UserID)
	if len(got) != 1 || got[0] != c.ID {
		t.Fatalf("expected new address to take principal, got %v", got)
	}
}

func TestAddressService_DeletePrincipalPromotesNewest(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAddressService()
	a := createAddress(t, svc, operator, "Av. Paulista")
	createAddress(t, svc, operator, "Rua Augusta")
	c := createAddress(t, svc, operator, "Rua Haddock Lobo")

	if err := svc.Delete(ctx, operator, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got := repo.principals(operator.UserID)
	if len(got) != 1 || got[0] != c.ID {
		t.Fatalf("expected most recent address promoted, got %v", got)
	}

	for _, address := range repo.addresses {
		if err := svc.Delete(ctx, operator, address.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
	}
	if len(repo.addresses) != 0 {
		t.Fatalf("expected no addresses left")
	}
}

func TestAddressService_Update(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAddressService()
	a := createAddress(t, svc, operator, "Av. Paulista")
	b := createAddress(t, svc, operator, "Rua Augusta")

	input := addressInput(operator, "Av. Paulista")
	input.Number = "2000"
	input.Principal = false
	updated, err := svc.Update(ctx, a.ID, input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Number != "2000" || !updated.Principal {
		t.Fatalf("update must keep principal, got %+v", updated)
	}

	input = addressInput(operator, "Rua Augusta")
	input.Principal = true
	if _, err := svc.Update(ctx, b.ID, input); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := repo.principals(operator.UserID)
	if len(got) != 1 || got[0] != b.ID {
		t.Fatalf("expected principal moved to b, got %v", got)
	}

	input.CEP = "123"
	if _, err := svc.Update(ctx, b.ID, input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddressService_ScopedToUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAddressService()
	a := createAddress(t, svc, operator, "Av. Paulista")

	other := model.Principal{UserID: uuid.New(), Role: model.RoleViewer}
	if _, err := svc.Get(ctx, other, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, other, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	list, err := svc.List(ctx, other)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v (%v)", list, err)
	}
	if _, err := svc.List(ctx, model.Principal{}); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	// Viewers manage their own addresses.
	if _, err := svc.Create(ctx, addressInput(other, "Rua XV")); err != nil {
		t.Fatalf("viewer create: %v", err)
	}
}

func TestAddressService_FailedWrite(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAddressService()
	createAddress(t, svc, operator, "Av. Paulista")
	b := createAddress(t, svc, operator, "Rua Augusta")

	repo.failWrite = errDB
	if _, err := svc.SetPrincipal(ctx, operator, b.ID); !errors.Is(err, errDB) {
		t.Fatalf("expected database error, got %v", err)
	}
	if repo.addresses[b.ID].Principal {
		t.Fatalf("failed switch must not change principal")
	}
}
