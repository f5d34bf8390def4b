package service

//go:generate mockgen -source=address_service.go -destination=../http/mocks/mock_address_service.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meuprecocerto/precificacao/internal/events"
	"github.com/meuprecocerto/precificacao/internal/model"
)

const resourceAddress = "address"

type AddressUseCase interface {
	List(ctx context.Context, user model.Principal) ([]model.Address, error)
	Get(ctx context.Context, user model.Principal, id uuid.UUID) (*model.Address, error)
	Create(ctx context.Context, input AddressInput) (*model.Address, error)
	Update(ctx context.Context, id uuid.UUID, input AddressInput) (*model.Address, error)
	Delete(ctx context.Context, user model.Principal, id uuid.UUID) error
	SetPrincipal(ctx context.Context, user model.Principal, id uuid.UUID) (*model.Address, error)
}

type AddressInput struct {
	Type       model.AddressType
	CEP        string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	Principal  bool
	User       model.Principal
}

// AddressService manages the caller's own addresses. A user with addresses
// always has exactly one principal: the first one created, then whichever
// is chosen explicitly.
type AddressService struct {
	repo   AddressRepository
	events events.Publisher
	log    zerolog.Logger
	now    func() time.Time
}

var _ AddressUseCase = (*AddressService)(nil)

func NewAddressService(repo AddressRepository, publisher events.Publisher, log zerolog.Logger) *AddressService {
	return &AddressService{
		repo:   repo,
		events: publisher,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *AddressService) List(ctx context.Context, user model.Principal) ([]model.Address, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	return s.repo.ListAddresses(ctx, user.UserID)
}

func (s *AddressService) Get(ctx context.Context, user model.Principal, id uuid.UUID) (*model.Address, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	address, err := s.repo.GetAddress(ctx, user.UserID, id)
	if err != nil {
		return nil, mapNotFound(err, "address %s", id)
	}
	return address, nil
}

func (s *AddressService) Create(ctx context.Context, input AddressInput) (*model.Address, error) {
	if err := requireUser(input.User); err != nil {
		return nil, err
	}
	now := s.now()
	address := input.address()
	address.ID = uuid.New()
	address.CreatedAt = now
	address.UpdatedAt = now
	if err := address.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.repo.ListAddresses(ctx, address.UserID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		address.Principal = true
	}
	var demoted *model.Address
	if address.Principal {
		demoted = principalOf(existing, address.ID)
	}

	if err := s.repo.CreateAddress(ctx, &address); err != nil {
		return nil, err
	}
	s.events.Publish(resourceAddress, events.ActionCreate, address)
	s.publishDemoted(demoted)
	return &address, nil
}

// Update replaces the address fields. Principal can be moved onto the
// address here but not taken away; choose another address instead.
func (s *AddressService) Update(ctx context.Context, id uuid.UUID, input AddressInput) (*model.Address, error) {
	existing, err := s.Get(ctx, input.User, id)
	if err != nil {
		return nil, err
	}
	address := input.address()
	address.ID = existing.ID
	address.CreatedAt = existing.CreatedAt
	address.UpdatedAt = s.now()
	address.Principal = existing.Principal || input.Principal
	if err := address.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var demoted *model.Address
	if address.Principal && !existing.Principal {
		all, err := s.repo.ListAddresses(ctx, address.UserID)
		if err != nil {
			return nil, err
		}
		demoted = principalOf(all, address.ID)
	}

	if err := s.repo.UpdateAddress(ctx, &address); err != nil {
		return nil, err
	}
	if address.Principal && !existing.Principal {
		s.logPrincipal(address)
	}
	s.events.Publish(resourceAddress, events.ActionUpdate, address)
	s.publishDemoted(demoted)
	return &address, nil
}

// Delete removes the address. When it was the principal, the most recently
// created remaining address takes over.
func (s *AddressService) Delete(ctx context.Context, user model.Principal, id uuid.UUID) error {
	address, err := s.Get(ctx, user, id)
	if err != nil {
		return err
	}

	var promote *model.Address
	if address.Principal {
		all, err := s.repo.ListAddresses(ctx, user.UserID)
		if err != nil {
			return err
		}
		for i := range all {
			candidate := &all[i]
			if candidate.ID == id {
				continue
			}
			if promote == nil || newerAddress(candidate, promote) {
				promote = candidate
			}
		}
	}

	var promoteID *uuid.UUID
	if promote != nil {
		promoteID = &promote.ID
	}
	if err := s.repo.DeleteAddress(ctx, user.UserID, id, promoteID); err != nil {
		return mapNotFound(err, "address %s", id)
	}
	s.events.Publish(resourceAddress, events.ActionDelete, *address)
	if promote != nil {
		promote.Principal = true
		s.logPrincipal(*promote)
		s.events.Publish(resourceAddress, events.ActionUpdate, *promote)
	}
	return nil
}

func (s *AddressService) SetPrincipal(ctx context.Context, user model.Principal, id uuid.UUID) (*model.Address, error) {
	address, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if address.Principal {
		return address, nil
	}
	all, err := s.repo.ListAddresses(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	demoted := principalOf(all, id)

	if err := s.repo.SetPrincipal(ctx, user.UserID, id); err != nil {
		return nil, mapNotFound(err, "address %s", id)
	}
	address.Principal = true
	s.logPrincipal(*address)
	s.events.Publish(resourceAddress, events.ActionUpdate, *address)
	s.publishDemoted(demoted)
	return address, nil
}

// publishDemoted announces the address that lost the principal flag in the
// same write, so subscribers never see two principals.
func (s *AddressService) publishDemoted(previous *model.Address) {
	if previous == nil {
		return
	}
	previous.Principal = false
	previous.UpdatedAt = s.now()
	s.events.Publish(resourceAddress, events.ActionUpdate, *previous)
}

func principalOf(addresses []model.Address, exceptID uuid.UUID) *model.Address {
	for i := range addresses {
		if addresses[i].Principal && addresses[i].ID != exceptID {
			current := addresses[i]
			return &current
		}
	}
	return nil
}

func (s *AddressService) logPrincipal(address model.Address) {
	s.log.Info().
		Str("user_id", address.UserID.String()).
		Str("address_id", address.ID.String()).
		Msg("principal address switched")
}

func (in AddressInput) address() model.Address {
	address := model.Address{
		UserID:     in.User.UserID,
		Type:       in.Type,
		CEP:        in.CEP,
		Street:     in.Street,
		Number:     in.Number,
		Complement: in.Complement,
		District:   in.District,
		City:       in.City,
		State:      in.State,
		Principal:  in.Principal,
	}
	address.Normalize()
	return address
}

func newerAddress(a, b *model.Address) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}

func requireUser(user model.Principal) error {
	if user.UserID == uuid.Nil {
		return ErrPermissionDenied
	}
	return nil
}
