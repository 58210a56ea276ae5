package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"grafeio-data/internal/domain"
	"grafeio-data/internal/repository"
)

type fakeRequestsRepo struct {
	requests map[string]*domain.Request
	listed   []*domain.Request
	total    int
	updated  *domain.Request
}

func (f *fakeRequestsRepo) GetRequest(ctx context.Context, id string) (*domain.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, fmt.Errorf("request not found")
	}
	return r, nil
}

func (f *fakeRequestsRepo) ListRequests(ctx context.Context, filters repository.RequestFilters, page, size int) ([]*domain.Request, int, error) {
	return f.listed, f.total, nil
}

func (f *fakeRequestsRepo) ListOverduePending(ctx context.Context, cutoff time.Time) ([]*domain.Request, error) {
	out := []*domain.Request{}
	for _, r := range f.requests {
		if r.Status == domain.RequestPending && r.SendDate != nil && !r.SendDate.After(cutoff) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestsRepo) CreateRequest(ctx context.Context, req *domain.Request) (string, error) {
	if f.requests == nil {
		f.requests = map[string]*domain.Request{}
	}
	id := fmt.Sprintf("req-%d", len(f.requests)+1)
	req.RequestID = id
	f.requests[id] = req
	return id, nil
}

func (f *fakeRequestsRepo) UpdateRequest(ctx context.Context, id string, req *domain.Request) error {
	f.updated = req
	return nil
}

func (f *fakeRequestsRepo) DeleteRequest(ctx context.Context, id string) error { return nil }

type fakeCitizensRepo struct {
	citizens map[string]*domain.Citizen
}

func (f *fakeCitizensRepo) GetCitizen(ctx context.Context, id string) (*domain.Citizen, error) {
	c, ok := f.citizens[id]
	if !ok {
		return nil, fmt.Errorf("citizen not found")
	}
	return c, nil
}

func (f *fakeCitizensRepo) GetCitizensByIDs(ctx context.Context, ids []string) (map[string]*domain.Citizen, error) {
	out := map[string]*domain.Citizen{}
	for _, id := range ids {
		if c, ok := f.citizens[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (f *fakeCitizensRepo) ListCitizens(ctx context.Context, filters repository.CitizenFilters, page, size int) ([]*domain.Citizen, int, error) {
	return nil, 0, nil
}
func (f *fakeCitizensRepo) CreateCitizen(ctx context.Context, c *domain.Citizen) (string, error) {
	return "", nil
}
func (f *fakeCitizensRepo) UpdateCitizen(ctx context.Context, id string, c *domain.Citizen) error {
	return nil
}
func (f *fakeCitizensRepo) DeleteCitizen(ctx context.Context, id string) error { return nil }

type fakeMilitaryRepo struct {
	personnel map[string]*domain.MilitaryPersonnel
}

func (f *fakeMilitaryRepo) GetMilitary(ctx context.Context, id string) (*domain.MilitaryPersonnel, error) {
	m, ok := f.personnel[id]
	if !ok {
		return nil, fmt.Errorf("military personnel not found")
	}
	return m, nil
}

func (f *fakeMilitaryRepo) GetMilitaryByIDs(ctx context.Context, ids []string) (map[string]*domain.MilitaryPersonnel, error) {
	out := map[string]*domain.MilitaryPersonnel{}
	for _, id := range ids {
		if m, ok := f.personnel[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func (f *fakeMilitaryRepo) ListMilitary(ctx context.Context, filters repository.MilitaryFilters, page, size int) ([]*domain.MilitaryPersonnel, int, error) {
	return nil, 0, nil
}
func (f *fakeMilitaryRepo) CreateMilitary(ctx context.Context, m *domain.MilitaryPersonnel) (string, error) {
	return "", nil
}
func (f *fakeMilitaryRepo) UpdateMilitary(ctx context.Context, id string, m *domain.MilitaryPersonnel) error {
	return nil
}
func (f *fakeMilitaryRepo) DeleteMilitary(ctx context.Context, id string) error { return nil }

func newRequestService(requests *fakeRequestsRepo, citizens *fakeCitizensRepo, military *fakeMilitaryRepo) RequestService {
	return NewRequestService(requests, citizens, military, nil, zap.NewNop())
}

func TestListRequests_Enrichment(t *testing.T) {
	old := time.Now().AddDate(0, 0, -30)
	recent := time.Now().AddDate(0, 0, -3)

	requests := &fakeRequestsRepo{
		listed: []*domain.Request{
			{RequestID: "r1", CitizenID: "c1", RequestType: "ΒΕΒΑΙΩΣΗ", Status: domain.RequestPending, SendDate: &old},
			{RequestID: "r2", MilitaryPersonnelID: "m1", RequestType: "ΜΕΤΑΘΕΣΗ", Status: domain.RequestPending, SendDate: &recent},
			{RequestID: "r3", CitizenID: "deleted", RequestType: "ΑΛΛΟ", Status: domain.RequestCompleted},
			{RequestID: "r4", RequestType: "ΑΛΛΟ", Status: domain.RequestPending},
		},
		total: 4,
	}
	citizens := &fakeCitizensRepo{citizens: map[string]*domain.Citizen{
		"c1": {CitizenID: "c1", Surname: "ΠΑΠΑΔΟΠΟΥΛΟΥ", Name: "ΜΑΡΙΑ", MobilePhone: "6941234567"},
	}}
	military := &fakeMilitaryRepo{personnel: map[string]*domain.MilitaryPersonnel{
		"m1": {MilitaryID: "m1", Surname: "ΝΙΚΟΛΑΟΥ", Name: "ΚΩΣΤΑΣ", Rank: "ΣΤΡΑΤΙΩΤΗΣ", Esso: "2025Β"},
	}}

	svc := newRequestService(requests, citizens, military)
	resp, err := svc.ListRequests(context.Background(), ListRequestsRequest{Page: 1, Size: 20})

	require.NoError(t, err)
	require.Len(t, resp.Items, 4)

	assert.Equal(t, "ΠΑΠΑΔΟΠΟΥΛΟΥ ΜΑΡΙΑ", resp.Items[0].RequesterName)
	assert.Equal(t, "6941234567", resp.Items[0].RequesterPhone)
	assert.True(t, resp.Items[0].Overdue, "30 day old pending request is overdue")

	assert.Equal(t, "ΣΤΡΑΤΙΩΤΗΣ ΝΙΚΟΛΑΟΥ ΚΩΣΤΑΣ", resp.Items[1].RequesterName)
	assert.Equal(t, "2025Β", resp.Items[1].RequesterEsso)
	assert.False(t, resp.Items[1].Overdue)

	// dangling reference keeps the row with the placeholder
	assert.Equal(t, domain.UnknownRequester, resp.Items[2].RequesterName)
	// anonymous walk-in gets the same placeholder
	assert.Equal(t, domain.UnknownRequester, resp.Items[3].RequesterName)

	assert.Equal(t, 4, resp.Page.Total)
}

func TestCreateRequest_RejectsBothRefs(t *testing.T) {
	svc := newRequestService(&fakeRequestsRepo{}, &fakeCitizensRepo{}, &fakeMilitaryRepo{})

	_, err := svc.CreateRequest(context.Background(), "u1", &domain.Request{
		RequestType:         "ΜΕΤΑΘΕΣΗ",
		CitizenID:           "c1",
		MilitaryPersonnelID: "m1",
	})
	assert.Error(t, err)
}

func TestCreateRequest_DefaultsPendingAndStampsActor(t *testing.T) {
	repo := &fakeRequestsRepo{}
	svc := newRequestService(repo, &fakeCitizensRepo{}, &fakeMilitaryRepo{})

	id, err := svc.CreateRequest(context.Background(), "u1", &domain.Request{RequestType: "ΒΕΒΑΙΩΣΗ"})

	require.NoError(t, err)
	created := repo.requests[id]
	assert.Equal(t, domain.RequestPending, created.Status)
	assert.Equal(t, "u1", created.CreatedBy)
	assert.Nil(t, created.CompletionDate)
}

func TestUpdateRequest_StatusTransitions(t *testing.T) {
	send := time.Now().AddDate(0, 0, -10)
	repo := &fakeRequestsRepo{requests: map[string]*domain.Request{
		"r1": {RequestID: "r1", RequestType: "ΒΕΒΑΙΩΣΗ", Status: domain.RequestPending, SendDate: &send},
	}}
	svc := newRequestService(repo, &fakeCitizensRepo{}, &fakeMilitaryRepo{})

	err := svc.UpdateRequest(context.Background(), "r1", &domain.Request{
		RequestType: "ΒΕΒΑΙΩΣΗ",
		Status:      domain.RequestCompleted,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updated.CompletionDate, "completing stamps the date")

	// simulate the stored state, then move back to pending
	repo.requests["r1"] = repo.updated
	err = svc.UpdateRequest(context.Background(), "r1", &domain.Request{
		RequestType: "ΒΕΒΑΙΩΣΗ",
		Status:      domain.RequestPending,
	})
	require.NoError(t, err)
	assert.Nil(t, repo.updated.CompletionDate, "leaving completed clears the date")
}
