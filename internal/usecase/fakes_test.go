package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sort"
	"sync"
	"time"

	"wow-campus/internal/domain/application"
	"wow-campus/internal/domain/company"
	"wow-campus/internal/domain/job"
	"wow-campus/internal/domain/jobseeker"
	"wow-campus/internal/domain/user"
	"wow-campus/internal/repository"
)

var errDB = errors.New("db down")

func ptr[T any](v T) *T { return &v }

type fakeJobs struct {
	items     map[int64]job.Posting
	err       error
	created   []job.Posting
	lastQuery job.SearchFilter
	views     int
}

func newFakeJobs(items ...job.Posting) *fakeJobs {
	f := &fakeJobs{items: map[int64]job.Posting{}}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return f
}

func (f *fakeJobs) sorted() []job.Posting {
	out := make([]job.Posting, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeJobs) Create(_ context.Context, p job.Posting) (job.Posting, error) {
	if f.err != nil {
		return job.Posting{}, f.err
	}
	p.ID = int64(len(f.items) + 1)
	f.items[p.ID] = p
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakeJobs) GetByID(_ context.Context, id int64) (job.Posting, error) {
	if f.err != nil {
		return job.Posting{}, f.err
	}
	p, ok := f.items[id]
	if !ok {
		return job.Posting{}, job.ErrNotFound
	}
	return p, nil
}

func (f *fakeJobs) Search(_ context.Context, q job.SearchFilter) ([]job.Posting, int, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, 0, f.err
	}
	all := f.sorted()
	return all, len(all), nil
}

func (f *fakeJobs) ListActive(_ context.Context) ([]job.Posting, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []job.Posting
	for _, p := range f.sorted() {
		if p.Status == job.StatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeJobs) Update(_ context.Context, id int64, p job.Patch) (job.Posting, error) {
	cur, ok := f.items[id]
	if !ok {
		return job.Posting{}, job.ErrNotFound
	}
	if p.Title != nil {
		cur.Title = *p.Title
	}
	if p.Status != nil {
		cur.Status = *p.Status
	}
	if p.SkillsRequired != nil {
		cur.SkillsRequired = *p.SkillsRequired
	}
	f.items[id] = cur
	return cur, nil
}

func (f *fakeJobs) SetStatus(_ context.Context, id int64, status job.Status) error {
	cur, ok := f.items[id]
	if !ok {
		return job.ErrNotFound
	}
	cur.Status = status
	f.items[id] = cur
	return nil
}

func (f *fakeJobs) IncrementViews(context.Context, int64) error {
	f.views++
	return nil
}

type fakeSeekers struct {
	items map[int64]jobseeker.Profile
	err   error
}

func newFakeSeekers(items ...jobseeker.Profile) *fakeSeekers {
	f := &fakeSeekers{items: map[int64]jobseeker.Profile{}}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return f
}

func (f *fakeSeekers) GetByID(_ context.Context, id int64) (jobseeker.Profile, error) {
	if f.err != nil {
		return jobseeker.Profile{}, f.err
	}
	p, ok := f.items[id]
	if !ok {
		return jobseeker.Profile{}, jobseeker.ErrNotFound
	}
	return p, nil
}

func (f *fakeSeekers) GetByUserID(_ context.Context, userID int64) (jobseeker.Profile, error) {
	if f.err != nil {
		return jobseeker.Profile{}, f.err
	}
	for _, p := range f.items {
		if p.UserID == userID {
			return p, nil
		}
	}
	return jobseeker.Profile{}, jobseeker.ErrNotFound
}

func (f *fakeSeekers) ListApproved(_ context.Context) ([]jobseeker.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]jobseeker.Profile, 0, len(f.items))
	for _, p := range f.items {
		if p.UserStatus == "" || p.UserStatus == string(user.StatusApproved) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSeekers) Search(ctx context.Context, _ jobseeker.SearchFilter) ([]jobseeker.Profile, int, error) {
	out, err := f.ListApproved(ctx)
	return out, len(out), err
}

func (f *fakeSeekers) Update(_ context.Context, id int64, p jobseeker.Patch) (jobseeker.Profile, error) {
	cur, ok := f.items[id]
	if !ok {
		return jobseeker.Profile{}, jobseeker.ErrNotFound
	}
	if p.Skills != nil {
		cur.Skills = *p.Skills
	}
	if p.PreferredLocation != nil {
		cur.PreferredLocation = *p.PreferredLocation
	}
	f.items[id] = cur
	return cur, nil
}

type fakeStats struct {
	activeJobs, seekers, approvedUsers, approvedCompanies, applications int
	byType                                                              map[string]int
	err                                                                 error
	snapshots                                                           []repository.Snapshot
	calls                                                               int
	mu                                                                  sync.Mutex
}

func (f *fakeStats) hit() error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.err
}

func (f *fakeStats) CountActiveJobs(context.Context) (int, error) { return f.activeJobs, f.hit() }
func (f *fakeStats) CountJobseekers(context.Context) (int, error) { return f.seekers, f.hit() }
func (f *fakeStats) CountApprovedUsers(context.Context) (int, error) {
	return f.approvedUsers, f.hit()
}
func (f *fakeStats) CountApprovedCompanies(context.Context) (int, error) {
	return f.approvedCompanies, f.hit()
}
func (f *fakeStats) CountApplications(context.Context) (int, error) { return f.applications, f.hit() }
func (f *fakeStats) CountUsersByType(context.Context) (map[string]int, error) {
	return f.byType, f.hit()
}
func (f *fakeStats) UpsertSnapshot(_ context.Context, s repository.Snapshot) error {
	f.snapshots = append(f.snapshots, s)
	return nil
}
func (f *fakeStats) LatestSnapshot(context.Context) (*repository.Snapshot, error) {
	if len(f.snapshots) == 0 {
		return nil, nil
	}
	s := f.snapshots[len(f.snapshots)-1]
	return &s, nil
}

type memCache struct {
	data    map[string][]byte
	getErr  error
	deleted []string
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

type fakeApps struct {
	items   map[int64]application.Application
	dupes   map[[2]int64]bool
	reviews []application.Review
	err     error
	last    application.ListFilter
}

func newFakeApps(items ...application.Application) *fakeApps {
	f := &fakeApps{items: map[int64]application.Application{}, dupes: map[[2]int64]bool{}}
	for _, it := range items {
		f.items[it.ID] = it
		f.dupes[[2]int64{it.JobPostingID, it.JobseekerID}] = true
	}
	return f
}

func (f *fakeApps) Create(_ context.Context, jobID, seekerID int64, cover string) (application.Application, error) {
	if f.err != nil {
		return application.Application{}, f.err
	}
	k := [2]int64{jobID, seekerID}
	if f.dupes[k] {
		return application.Application{}, application.ErrAlreadyApplied
	}
	f.dupes[k] = true
	a := application.Application{
		ID:           int64(len(f.items) + 1),
		JobPostingID: jobID,
		JobseekerID:  seekerID,
		Status:       application.StatusSubmitted,
		CoverLetter:  cover,
	}
	f.items[a.ID] = a
	return a, nil
}

func (f *fakeApps) GetByID(_ context.Context, id int64) (application.Application, error) {
	a, ok := f.items[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (f *fakeApps) Exists(_ context.Context, jobID, seekerID int64) (bool, error) {
	return f.dupes[[2]int64{jobID, seekerID}], nil
}

func (f *fakeApps) List(_ context.Context, q application.ListFilter) ([]application.Application, int, error) {
	f.last = q
	out := make([]application.Application, 0, len(f.items))
	for _, a := range f.items {
		out = append(out, a)
	}
	return out, len(out), f.err
}

func (f *fakeApps) ApplyReview(_ context.Context, id int64, r application.Review) (application.Application, error) {
	a, ok := f.items[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	f.reviews = append(f.reviews, r)
	a.Status = r.Status
	a.ReviewedBy = &r.ReviewedBy
	f.items[id] = a
	return a, nil
}

func (f *fakeApps) SetStatus(_ context.Context, id int64, st application.Status) (application.Application, error) {
	a, ok := f.items[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	a.Status = st
	f.items[id] = a
	return a, nil
}

type fakeCompanies struct {
	items map[int64]company.Company
}

func newFakeCompanies(items ...company.Company) *fakeCompanies {
	f := &fakeCompanies{items: map[int64]company.Company{}}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return f
}

func (f *fakeCompanies) GetByID(_ context.Context, id int64) (company.Company, error) {
	c, ok := f.items[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}

func (f *fakeCompanies) GetByUserID(_ context.Context, userID int64) (company.Company, error) {
	for _, c := range f.items {
		if c.UserID == userID {
			return c, nil
		}
	}
	return company.Company{}, company.ErrNotFound
}

func (f *fakeCompanies) List(context.Context, string, int, int) ([]company.Company, int, error) {
	return nil, 0, nil
}

func (f *fakeCompanies) CreateWithOwner(_ context.Context, owner user.User, c company.Company) (company.Company, error) {
	for _, existing := range f.items {
		if existing.Email == owner.Email {
			return company.Company{}, user.ErrEmailTaken
		}
	}
	c.ID = int64(len(f.items) + 1)
	c.UserID = 1000 + c.ID
	c.Email = owner.Email
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeCompanies) Update(_ context.Context, id int64, p company.Patch) (company.Company, error) {
	c, ok := f.items[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	if p.CompanyName != nil {
		c.CompanyName = *p.CompanyName
	}
	f.items[id] = c
	return c, nil
}

type event struct {
	kind  string
	id    int64
	title string
}

type recordingNotifier struct {
	events []event
}

func (n *recordingNotifier) Publish(kind string, id int64, title string) {
	n.events = append(n.events, event{kind, id, title})
}

type countingInvalidator struct {
	n int
}

func (c *countingInvalidator) Invalidate(context.Context) { c.n++ }
