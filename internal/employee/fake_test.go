package employee

import (
	"context"
	"sync"
)

// fakeAPI is an in-memory API for service tests.
type fakeAPI struct {
	mu        sync.Mutex
	records   []Record
	listCalls int
	listErrs  []error
	createErr error
	updateErr error
	creates   []CreatePayload
	updates   []UpdatePayload
}

func (f *fakeAPI) List(ctx context.Context) ([]Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if len(f.listErrs) > 0 {
		err := f.listErrs[0]
		f.listErrs = f.listErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return append([]Record(nil), f.records...), nil
}

func (f *fakeAPI) Create(ctx context.Context, p CreatePayload) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, p)
	if f.createErr != nil {
		return nil, f.createErr
	}
	rec := Record{ID: "emp-new", Name: p.Name, Email: p.Email, PhoneNo: p.PhoneNo, Role: p.Role}
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeAPI) Update(ctx context.Context, p UpdatePayload) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, p)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	rec := Record{ID: p.ID, Name: p.Name, Email: p.Email, PhoneNo: p.PhoneNo, Role: p.Role}
	return &rec, nil
}
