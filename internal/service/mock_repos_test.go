package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"class-timetable/internal/domain/schedule"
	"class-timetable/internal/domain/user"
)

var errBackend = errors.New("connection reset by peer")

type fakeEnrollmentRepo struct {
	mu          sync.Mutex
	records     []*schedule.Enrollment
	insertErr   error
	findErr     error
	skipPreload bool // FindByUserAndLecture reports nothing, as if a racing insert had not landed yet
	inserts     int
	onFindAll   func() // runs once after FindAllByUser has read, outside the lock
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{}
}

func (r *fakeEnrollmentRepo) Insert(ctx context.Context, e *schedule.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserts++
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, existing := range r.records {
		if existing.UserID == e.UserID && existing.LectureID == e.LectureID {
			return schedule.ErrDuplicateEnrollment
		}
	}
	cp := *e
	r.records = append(r.records, &cp)
	return nil
}

func (r *fakeEnrollmentRepo) Remove(ctx context.Context, userID, lectureID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	var removed int64
	for _, e := range r.records {
		if e.UserID == userID && e.LectureID == lectureID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.records = kept
	return removed, nil
}

func (r *fakeEnrollmentRepo) FindAllByUser(ctx context.Context, userID string) ([]*schedule.Enrollment, error) {
	if r.onFindAll != nil {
		hook := r.onFindAll
		r.onFindAll = nil
		defer hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*schedule.Enrollment
	for _, e := range r.records {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) FindByUserAndLecture(ctx context.Context, userID, lectureID string) (*schedule.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.skipPreload {
		return nil, nil
	}
	for _, e := range r.records {
		if e.UserID == userID && e.LectureID == lectureID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEnrollmentRepo) FindByUserDaySlot(ctx context.Context, userID string, day int, timeSlotID string) (*schedule.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, e := range r.records {
		if e.UserID == userID && e.DayOfWeek == day && e.TimeSlotID == timeSlotID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEnrollmentRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeLectureRepo struct {
	mu       sync.Mutex
	lectures map[string]*schedule.Lecture
	getErr   error
	gets     int
}

func newFakeLectureRepo(lectures ...*schedule.Lecture) *fakeLectureRepo {
	r := &fakeLectureRepo{lectures: make(map[string]*schedule.Lecture)}
	for _, l := range lectures {
		r.lectures[l.ID] = l
	}
	return r
}

func (r *fakeLectureRepo) GetByID(ctx context.Context, id string) (*schedule.Lecture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	if r.getErr != nil {
		return nil, r.getErr
	}
	l, ok := r.lectures[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLectureRepo) Create(ctx context.Context, l *schedule.Lecture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.lectures[l.ID] = &cp
	return nil
}

func (r *fakeLectureRepo) List(ctx context.Context, limit, offset int) ([]*schedule.Lecture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*schedule.Lecture
	for _, l := range r.lectures {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return []*schedule.Lecture{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeTimeSlotRepo struct {
	mu     sync.Mutex
	slots  map[string]*schedule.TimeSlot
	getErr error
	gets   int
}

func newFakeTimeSlotRepo(slots ...*schedule.TimeSlot) *fakeTimeSlotRepo {
	r := &fakeTimeSlotRepo{slots: make(map[string]*schedule.TimeSlot)}
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	return r
}

func (r *fakeTimeSlotRepo) GetByID(ctx context.Context, id string) (*schedule.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	if r.getErr != nil {
		return nil, r.getErr
	}
	s, ok := r.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeTimeSlotRepo) Create(ctx context.Context, s *schedule.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[s.ID]; ok {
		return schedule.ErrDuplicateTimeSlot
	}
	cp := *s
	r.slots[s.ID] = &cp
	return nil
}

func (r *fakeTimeSlotRepo) ListByLecture(ctx context.Context, lectureID string) ([]*schedule.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*schedule.TimeSlot
	for _, s := range r.slots {
		if s.LectureID == lectureID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.UserName == u.UserName {
			return user.ErrUserNameTaken
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUserName(ctx context.Context, userName string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.UserName == userName {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*user.User
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserName < out[j].UserName })
	if offset >= len(out) {
		return []*user.User{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	delete(r.users, id)
	return ok, nil
}

func (r *fakeUserRepo) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type cachedWeek struct {
	version int64
	week    schedule.WeeklySchedule
}

type fakeFriendRepo struct {
	mu    sync.Mutex
	users *fakeUserRepo
	pairs []*user.Friend
}

func newFakeFriendRepo(users *fakeUserRepo) *fakeFriendRepo {
	return &fakeFriendRepo{users: users}
}

func (r *fakeFriendRepo) Add(ctx context.Context, f *user.Friend) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pairs {
		if p.UserID == f.UserID && p.FriendID == f.FriendID {
			return user.ErrAlreadyFriends
		}
	}
	cp := *f
	r.pairs = append(r.pairs, &cp)
	return nil
}

func (r *fakeFriendRepo) Remove(ctx context.Context, userID, friendID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.pairs {
		if p.UserID == userID && p.FriendID == friendID {
			r.pairs = append(r.pairs[:i], r.pairs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeFriendRepo) ListFriends(ctx context.Context, userID string) ([]*user.User, error) {
	r.mu.Lock()
	var ids []string
	for _, p := range r.pairs {
		if p.UserID == userID {
			ids = append(ids, p.FriendID)
		}
	}
	r.mu.Unlock()

	out := []*user.User{}
	for _, id := range ids {
		u, _ := r.users.GetByID(ctx, id)
		if u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*schedule.LectureComment
	err      error
}

func (r *fakeCommentRepo) Create(ctx context.Context, c *schedule.LectureComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	cp := *c
	r.comments = append(r.comments, &cp)
	return nil
}

func (r *fakeCommentRepo) ListByLecture(ctx context.Context, lectureID string, limit, offset int) ([]*schedule.LectureComment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*schedule.LectureComment
	for _, c := range r.comments {
		if c.LectureID == lectureID {
			out = append(out, c)
		}
	}
	if offset >= len(out) {
		return []*schedule.LectureComment{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCache struct {
	mu            sync.Mutex
	weekly        map[string]cachedWeek
	versions      map[string]int64
	lectures      map[string]*schedule.Lecture
	failing       bool
	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		weekly:   make(map[string]cachedWeek),
		versions: make(map[string]int64),
		lectures: make(map[string]*schedule.Lecture),
	}
}

func (c *fakeCache) GetWeeklySchedule(ctx context.Context, userID string) (*schedule.WeeklySchedule, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return nil, 0, errBackend
	}
	version := c.versions[userID]
	w, ok := c.weekly[userID]
	if !ok || w.version != version {
		return nil, version, nil
	}
	return &w.week, version, nil
}

func (c *fakeCache) SetWeeklySchedule(ctx context.Context, userID string, version int64, week schedule.WeeklySchedule) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errBackend
	}
	c.weekly[userID] = cachedWeek{version: version, week: week}
	return nil
}

func (c *fakeCache) InvalidateWeeklySchedule(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	if c.failing {
		return errBackend
	}
	c.versions[userID]++
	delete(c.weekly, userID)
	return nil
}

func (c *fakeCache) GetLectureDetails(ctx context.Context, lectureID string) (*schedule.Lecture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return nil, errBackend
	}
	return c.lectures[lectureID], nil
}

func (c *fakeCache) SetLectureDetails(ctx context.Context, lecture *schedule.Lecture) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failing {
		return errBackend
	}
	c.lectures[lecture.ID] = lecture
	return nil
}

func (c *fakeCache) Health(ctx context.Context) error { return nil }

func (c *fakeCache) Close() error { return nil }
