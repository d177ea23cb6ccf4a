package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"edu_portal/internal/client"
	"edu_portal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleUsers() []model.User {
	return []model.User{
		{ID: "1", Email: "a@x.com", Role: model.RoleStudent, Profile: model.StudentProfile{Name: "A", Grade: "10"}},
		{ID: "2", Email: "bob@school.org", Role: model.RoleTeacher, Profile: model.TeacherProfile{Name: "Robert Stone", Subject: "Physics", Experience: 12}},
		{ID: "3", Email: "cara@x.com", Role: model.RoleStudent, Profile: nil},
	}
}

type fakeAPI struct {
	users     []model.User
	listErr   error
	deleteErr error
	updateErr error
	deletes   int
	lastUpd   model.UserUpdate
	block     bool
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]model.User, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return append([]model.User(nil), f.users...), f.listErr
}

func (f *fakeAPI) GetUser(ctx context.Context, id string) (model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, &client.ServerError{Status: 404, Message: "user not found"}
}

func (f *fakeAPI) UpdateUser(ctx context.Context, id string, upd model.UserUpdate) (model.User, error) {
	f.lastUpd = upd
	if f.updateErr != nil {
		return model.User{}, f.updateErr
	}
	return model.User{ID: id, Email: upd.Email, Role: upd.Role, Profile: upd.Profile}, nil
}

func (f *fakeAPI) DeleteUser(ctx context.Context, id string) error {
	f.deletes++
	return f.deleteErr
}

func yes(model.User) bool { return true }
func no(model.User) bool  { return false }

func TestFilter(t *testing.T) {
	users := sampleUsers()
	snapshot := sampleUsers()

	assert.Equal(t, users, Filter(users, ""))
	assert.Equal(t, []string{"2"}, ids(Filter(users, "ROBERT")))
	assert.Equal(t, []string{"1", "3"}, ids(Filter(users, "x.com")))
	assert.Equal(t, []string{"2"}, ids(Filter(users, "school")))
	assert.Empty(t, Filter(users, "zzz"))
	assert.Equal(t, snapshot, users, "filter must not mutate its input")
}

func TestFilter_SingleStudentExample(t *testing.T) {
	users := []model.User{{ID: "1", Email: "a@x.com", Role: model.RoleStudent, Profile: model.StudentProfile{Name: "A", Grade: "10"}}}

	assert.Equal(t, users, Filter(users, "A"))
	assert.Empty(t, Filter(users, "zzz"))
}

func TestView_LoadAndVisible(t *testing.T) {
	api := &fakeAPI{users: sampleUsers()}
	v := NewView(context.Background(), api, zap.NewNop())
	defer v.Close()

	require.NoError(t, v.Load(context.Background()))
	assert.Len(t, v.Users(), 3)
	assert.Equal(t, []string{"2"}, ids(v.Visible("stone")))
}

func TestView_LoadError(t *testing.T) {
	api := &fakeAPI{listErr: &client.NetworkError{Err: errors.New("refused")}}
	v := NewView(context.Background(), api, zap.NewNop())

	var ne *client.NetworkError
	assert.ErrorAs(t, v.Load(context.Background()), &ne)
	assert.Empty(t, v.Users())
}

func TestView_Delete(t *testing.T) {
	api := &fakeAPI{users: sampleUsers()}
	v := NewView(context.Background(), api, zap.NewNop())
	require.NoError(t, v.Load(context.Background()))
	before := v.Users()

	sent, err := v.Delete(context.Background(), "2", no)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Zero(t, api.deletes)

	sent, err = v.Delete(context.Background(), "2", yes)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, []string{"1", "3"}, ids(v.Users()))
	assert.Len(t, before, 3, "earlier snapshots are unaffected")
}

func TestView_DeleteFailureKeepsList(t *testing.T) {
	api := &fakeAPI{users: sampleUsers(), deleteErr: &client.AuthError{Status: 403, Message: "forbidden"}}
	v := NewView(context.Background(), api, zap.NewNop())
	require.NoError(t, v.Load(context.Background()))

	sent, err := v.Delete(context.Background(), "1", yes)

	assert.True(t, sent)
	assert.Error(t, err)
	assert.Equal(t, sampleUsers(), v.Users())
}

func TestView_DeleteUnknown(t *testing.T) {
	v := NewView(context.Background(), &fakeAPI{}, zap.NewNop())

	_, err := v.Delete(context.Background(), "9", yes)
	var ve *client.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestView_EditSwitchRoleAndUpdate(t *testing.T) {
	api := &fakeAPI{users: sampleUsers()}
	v := NewView(context.Background(), api, zap.NewNop())
	require.NoError(t, v.Load(context.Background()))

	form, err := v.Edit(context.Background(), "2")
	require.NoError(t, err)
	require.NoError(t, form.SetRole(model.RoleStudent))
	require.NoError(t, form.SetField("name", "Rob"))
	require.NoError(t, form.SetField("courses", "math-1, ,art-2"))

	updated, err := v.Update(context.Background(), "2", form)
	require.NoError(t, err)

	assert.Equal(t, model.StudentProfile{Name: "Rob", Courses: []string{"math-1", "art-2"}}, api.lastUpd.Profile)
	assert.Equal(t, model.RoleStudent, updated.Role)
	got, ok := v.Find("2")
	require.True(t, ok)
	assert.Equal(t, updated, got)
}

func TestView_UpdateFailureKeepsList(t *testing.T) {
	api := &fakeAPI{users: sampleUsers(), updateErr: &client.ServerError{Status: 409, Message: "user with this email already exists"}}
	v := NewView(context.Background(), api, zap.NewNop())
	require.NoError(t, v.Load(context.Background()))

	form := NewUpdateForm(sampleUsers()[0])
	form.Email = "bob@school.org"
	_, err := v.Update(context.Background(), "1", form)

	assert.Error(t, err)
	assert.Equal(t, sampleUsers(), v.Users())
}

func TestView_UpdateValidation(t *testing.T) {
	api := &fakeAPI{}
	v := NewView(context.Background(), api, zap.NewNop())

	_, err := v.Update(context.Background(), "1", &UpdateForm{Email: " ", Role: model.RoleStudent})
	var ve *client.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Empty(t, api.lastUpd.Email)
}

func TestView_CloseCancelsInFlight(t *testing.T) {
	api := &fakeAPI{block: true}
	v := NewView(context.Background(), api, zap.NewNop())

	errc := make(chan error, 1)
	go func() { errc <- v.Load(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	v.Close()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("load was not canceled by Close")
	}

	assert.ErrorIs(t, v.Load(context.Background()), ErrClosed)
}

func ids(users []model.User) []string {
	out := []string{}
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}
