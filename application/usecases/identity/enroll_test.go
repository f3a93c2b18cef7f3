package identity_usecases

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"faceclock.io/entities"
	"faceclock.io/infrastructure/biometric"
	"faceclock.io/infrastructure/biometric/types"
)

// memoryIdentityStore mirrors the storage contract in process so enrollment
// and resolution can be exercised without a database: employee code and
// email are unique, and descriptors land inside their identity atomically.
type memoryIdentityStore struct {
	mu         sync.Mutex
	identities map[string]*entities.Identity
}

func newMemoryIdentityStore() *memoryIdentityStore {
	return &memoryIdentityStore{identities: map[string]*entities.Identity{}}
}

func (s *memoryIdentityStore) FindByEmployeeCode(_ context.Context, employeeCode string) (*entities.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, identity := range s.identities {
		if identity.EmployeeCode == employeeCode {
			copied := *identity
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memoryIdentityStore) FindByID(_ context.Context, id string) (*entities.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, exists := s.identities[id]
	if !exists {
		return nil, nil
	}
	copied := *identity
	return &copied, nil
}

func (s *memoryIdentityStore) Insert(_ context.Context, identity entities.Identity) (*entities.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.identities {
		if existing.EmployeeCode == identity.EmployeeCode || strings.EqualFold(existing.Email, identity.Email) {
			return nil, ErrIdentityConflict
		}
	}
	parsed := identity.ParseModel().(*entities.Identity)
	s.identities[parsed.ID] = parsed
	copied := *parsed
	return &copied, nil
}

func (s *memoryIdentityStore) AppendDescriptor(_ context.Context, identityID string, descriptor entities.FaceDescriptor) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, exists := s.identities[identityID]
	if !exists {
		return false, nil
	}
	identity.Descriptors = append(identity.Descriptors, descriptor)
	identity.UpdatedAt = time.Now()
	return true, nil
}

func (s *memoryIdentityStore) SetImage(_ context.Context, identityID string, blobName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if identity, exists := s.identities[identityID]; exists {
		identity.Image = blobName
	}
	return nil
}

func (s *memoryIdentityStore) ActiveDescriptors(_ context.Context) ([]types.EnrolledDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enrolled := []types.EnrolledDescriptor{}
	for _, identity := range s.identities {
		if identity.Deactivated {
			continue
		}
		for _, descriptor := range identity.Descriptors {
			enrolled = append(enrolled, types.EnrolledDescriptor{
				IdentityID: identity.ID,
				Vector:     descriptor.Vector,
			})
		}
	}
	return enrolled, nil
}

func (s *memoryIdentityStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.identities)
}

func testVector(seed float64) []float64 {
	vector := make([]float64, biometric.DescriptorLength)
	vector[0] = seed
	return vector
}

func enrollmentFor(code string, vector []float64) EnrollmentInput {
	return EnrollmentInput{
		FullName:     "Ada Lovelace",
		Email:        code + "@faceclock.io",
		EmployeeCode: code,
		Descriptor:   vector,
	}
}

func TestEnrollRejectsBadDescriptorWithoutWriting(t *testing.T) {
	store := newMemoryIdentityStore()
	directory := Directory{Store: store}

	input := enrollmentFor("EMP-0001", []float64{0.1, 0.2, 0.3})
	_, err := directory.Enroll(context.Background(), input)
	if !errors.Is(err, biometric.ErrInvalidDescriptorLength) {
		t.Fatalf("expected ErrInvalidDescriptorLength, got %v", err)
	}
	if store.count() != 0 {
		t.Fatalf("rejected enrollment left %d identities behind", store.count())
	}

	_, err = directory.Enroll(context.Background(), EnrollmentInput{
		FullName:     "Ada Lovelace",
		Email:        "ada@faceclock.io",
		EmployeeCode: "EMP-0001",
	})
	if !errors.Is(err, ErrNoUsableDescriptor) {
		t.Fatalf("expected ErrNoUsableDescriptor, got %v", err)
	}
	if store.count() != 0 {
		t.Fatalf("rejected enrollment left %d identities behind", store.count())
	}
}

func TestEnrollAppendsDescriptorForSameEmployee(t *testing.T) {
	store := newMemoryIdentityStore()
	directory := Directory{Store: store}

	first, err := directory.Enroll(context.Background(), enrollmentFor("EMP-0002", testVector(0)))
	if err != nil {
		t.Fatalf("first enrollment failed: %v", err)
	}
	if first.Appended {
		t.Fatal("first enrollment reported as an append")
	}

	second, err := directory.Enroll(context.Background(), enrollmentFor("EMP-0002", testVector(0.1)))
	if err != nil {
		t.Fatalf("second enrollment failed: %v", err)
	}
	if !second.Appended {
		t.Fatal("re-enrollment of the same employee should append")
	}
	if store.count() != 1 {
		t.Fatalf("expected 1 identity, got %d", store.count())
	}
	stored, _ := store.FindByID(context.Background(), first.Identity.ID)
	if len(stored.Descriptors) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(stored.Descriptors))
	}
}

func TestEnrollConflictsOnMismatchedEmail(t *testing.T) {
	store := newMemoryIdentityStore()
	directory := Directory{Store: store}

	if _, err := directory.Enroll(context.Background(), enrollmentFor("EMP-0003", testVector(0))); err != nil {
		t.Fatalf("first enrollment failed: %v", err)
	}

	input := enrollmentFor("EMP-0003", testVector(0.1))
	input.Email = "someone.else@faceclock.io"
	_, err := directory.Enroll(context.Background(), input)
	if !errors.Is(err, ErrIdentityConflict) {
		t.Fatalf("expected ErrIdentityConflict, got %v", err)
	}
	stored, _ := store.FindByEmployeeCode(context.Background(), "EMP-0003")
	if len(stored.Descriptors) != 1 {
		t.Fatalf("conflicting enrollment changed the descriptor set: %d", len(stored.Descriptors))
	}
}

func TestEnrollThenResolveRoundTrip(t *testing.T) {
	store := newMemoryIdentityStore()
	directory := Directory{Store: store}

	enrolled, err := directory.Enroll(context.Background(), enrollmentFor("EMP-0004", testVector(0)))
	if err != nil {
		t.Fatalf("enrollment failed: %v", err)
	}
	if _, err := directory.Enroll(context.Background(), enrollmentFor("EMP-0005", testVector(5))); err != nil {
		t.Fatalf("enrollment failed: %v", err)
	}

	result, identity, err := directory.Resolve(context.Background(), testVector(0))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if result.Outcome != types.Matched {
		t.Fatalf("expected a match, got %v", result.Outcome)
	}
	if identity == nil || identity.ID != enrolled.Identity.ID {
		t.Fatalf("resolved the wrong identity: %+v", identity)
	}

	farOff, _, err := directory.Resolve(context.Background(), testVector(50))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if farOff.Outcome != types.NoMatch {
		t.Fatalf("expected no match for a distant probe, got %v", farOff.Outcome)
	}
}
