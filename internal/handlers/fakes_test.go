package handlers

import (
	"sort"

	"github.com/nailit-app/backend/internal/models"
	"github.com/nailit-app/backend/internal/repositories"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the handler tests. Each one mirrors
// the store contract the Postgres implementation provides, including
// gorm.ErrDuplicatedKey on unique-index violations.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
	// set to force DeleteAccount to fail mid-cascade
	deleteErr error
	deleted   []uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) addUser(username, email string) *models.User {
	u := &models.User{ID: r.nextID, Username: username, Email: email}
	r.users[u.ID] = u
	r.nextID++
	return u
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) DeleteAccount(userID uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.users, userID)
	r.deleted = append(r.deleted, userID)
	return nil
}

type fakeGoalRepo struct {
	goals  map[uint]*models.Goal
	nextID uint
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[uint]*models.Goal), nextID: 1}
}

func (r *fakeGoalRepo) CreateGoal(goal *models.Goal) error {
	goal.ID = r.nextID
	r.nextID++
	r.goals[goal.ID] = goal
	return nil
}

func (r *fakeGoalRepo) GetGoalByID(id uint) (*models.Goal, error) {
	if g, ok := r.goals[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeGoalRepo) GetGoalsByUser(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			goals = append(goals, *g)
		}
	}
	return goals, nil
}

func (r *fakeGoalRepo) UpdateStatus(goalID uint, status models.GoalStatus) error {
	if g, ok := r.goals[goalID]; ok {
		g.Status = status
	}
	return nil
}

type fakePostRepo struct {
	posts  map[uint]*models.Post
	nextID uint
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uint]*models.Post), nextID: 1}
}

func (r *fakePostRepo) addPost(userID, goalID uint) *models.Post {
	p := &models.Post{ID: r.nextID, UserID: userID, GoalID: goalID}
	r.posts[p.ID] = p
	r.nextID++
	return p
}

func (r *fakePostRepo) CreatePost(post *models.Post) error {
	post.ID = r.nextID
	r.nextID++
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetPostByID(id uint) (*models.Post, error) {
	if p, ok := r.posts[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePostRepo) GetPostsByUser(userID uint) ([]models.Post, error) {
	var posts []models.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			posts = append(posts, *p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	return posts, nil
}

func (r *fakePostRepo) GetPostsByIDs(ids []uint) ([]models.Post, error) {
	var posts []models.Post
	for _, id := range ids {
		if p, ok := r.posts[id]; ok {
			posts = append(posts, *p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	return posts, nil
}

type likeKey struct{ postID, userID uint }

type fakeLikeRepo struct {
	likes map[likeKey]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[likeKey]bool)}
}

func (r *fakeLikeRepo) CreateLike(like *models.Like) error {
	key := likeKey{like.PostID, like.UserID}
	if r.likes[key] {
		return gorm.ErrDuplicatedKey
	}
	r.likes[key] = true
	return nil
}

func (r *fakeLikeRepo) DeleteLike(postID, userID uint) error {
	key := likeKey{postID, userID}
	if !r.likes[key] {
		return repositories.ErrLikeNotFound
	}
	delete(r.likes, key)
	return nil
}

func (r *fakeLikeRepo) GetLikesCountByPostID(postID uint) (int64, error) {
	var count int64
	for k := range r.likes {
		if k.postID == postID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLikeRepo) HasUserLikedPost(postID, userID uint) (bool, error) {
	return r.likes[likeKey{postID, userID}], nil
}

func (r *fakeLikeRepo) GetLikedPostIDs(userID uint, postIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	for _, pid := range postIDs {
		if r.likes[likeKey{pid, userID}] {
			result[pid] = true
		}
	}
	return result, nil
}

type bookmarkKey struct{ userID, postID uint }

type fakeBookmarkRepo struct {
	bookmarks map[bookmarkKey]bool
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{bookmarks: make(map[bookmarkKey]bool)}
}

func (r *fakeBookmarkRepo) CreateBookmark(bookmark *models.Bookmark) error {
	key := bookmarkKey{bookmark.UserID, bookmark.PostID}
	if r.bookmarks[key] {
		return gorm.ErrDuplicatedKey
	}
	r.bookmarks[key] = true
	return nil
}

func (r *fakeBookmarkRepo) DeleteBookmark(userID, postID uint) error {
	key := bookmarkKey{userID, postID}
	if !r.bookmarks[key] {
		return repositories.ErrBookmarkNotFound
	}
	delete(r.bookmarks, key)
	return nil
}

func (r *fakeBookmarkRepo) IsBookmarked(userID, postID uint) (bool, error) {
	return r.bookmarks[bookmarkKey{userID, postID}], nil
}

func (r *fakeBookmarkRepo) GetBookmarkedPostIDs(userID uint, page, limit int) ([]uint, int64, error) {
	var ids []uint
	for k := range r.bookmarks {
		if k.userID == userID {
			ids = append(ids, k.postID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	total := int64(len(ids))
	start := (page - 1) * limit
	if start >= len(ids) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[start:end], total, nil
}

type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint]*models.Comment), nextID: 1}
}

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	if cm, ok := r.comments[id]; ok {
		return cm, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommentRepo) GetCommentsByPostID(postID uint, page, limit int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	for _, cm := range r.comments {
		if cm.PostID == postID {
			comments = append(comments, *cm)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID > comments[j].ID })
	return comments, int64(len(comments)), nil
}

func (r *fakeCommentRepo) GetCommentsForPosts(postIDs []uint) (map[uint][]models.Comment, error) {
	result := make(map[uint][]models.Comment)
	for _, pid := range postIDs {
		for _, cm := range r.comments {
			if cm.PostID == pid {
				result[pid] = append(result[pid], *cm)
			}
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) DeleteComment(id uint) error {
	delete(r.comments, id)
	return nil
}

type followKey struct{ followerID, followingID uint }

type fakeFollowRepo struct {
	follows map[followKey]bool
	users   *fakeUserRepo
	// notifications created alongside follows, for assertions
	notifications []*models.Notification
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{follows: make(map[followKey]bool), users: users}
}

func (r *fakeFollowRepo) CreateFollowWithNotification(follow *models.Follow, notification *models.Notification) error {
	key := followKey{follow.FollowerID, follow.FollowingID}
	if r.follows[key] {
		return gorm.ErrDuplicatedKey
	}
	r.follows[key] = true
	if notification != nil {
		r.notifications = append(r.notifications, notification)
	}
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(followerID, followingID uint) error {
	key := followKey{followerID, followingID}
	if !r.follows[key] {
		return repositories.ErrFollowNotFound
	}
	delete(r.follows, key)
	return nil
}

func (r *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	return r.follows[followKey{followerID, followingID}], nil
}

func (r *fakeFollowRepo) GetFollowers(userID uint, page, limit int) ([]models.User, int64, error) {
	var ids []uint
	for k := range r.follows {
		if k.followingID == userID {
			ids = append(ids, k.followerID)
		}
	}
	return r.pageUsers(ids, page, limit)
}

func (r *fakeFollowRepo) GetFollowing(userID uint, page, limit int) ([]models.User, int64, error) {
	var ids []uint
	for k := range r.follows {
		if k.followerID == userID {
			ids = append(ids, k.followingID)
		}
	}
	return r.pageUsers(ids, page, limit)
}

func (r *fakeFollowRepo) pageUsers(ids []uint, page, limit int) ([]models.User, int64, error) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	total := int64(len(ids))
	start := (page - 1) * limit
	if start >= len(ids) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}
	users := make([]models.User, 0, end-start)
	for _, id := range ids[start:end] {
		if u, ok := r.users.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, total, nil
}

type fakeNotificationRepo struct {
	notifications map[uint]*models.Notification
	nextID        uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uint]*models.Notification), nextID: 1}
}

func (r *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	notification.ID = r.nextID
	r.nextID++
	r.notifications[notification.ID] = notification
	return nil
}

func (r *fakeNotificationRepo) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == recipientID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(notificationID, recipientID uint) error {
	n, ok := r.notifications[notificationID]
	if !ok || n.UserID != recipientID {
		return repositories.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (r *fakeNotificationRepo) DeleteNotification(notificationID, recipientID uint) error {
	n, ok := r.notifications[notificationID]
	if !ok || n.UserID != recipientID {
		return repositories.ErrNotificationNotFound
	}
	delete(r.notifications, notificationID)
	return nil
}
