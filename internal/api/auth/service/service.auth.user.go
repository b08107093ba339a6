// Package authsvc implements registration, sessions and account management.
package authsvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	authdto "github.com/Dhairyash-1/videotube-api/internal/api/auth/dto"
	"github.com/Dhairyash-1/videotube-api/internal/api/auth/models"
	basesvc "github.com/Dhairyash-1/videotube-api/internal/api/base/service"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
	"github.com/Dhairyash-1/videotube-api/internal/mailer"
	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

// MediaStore uploads and removes user images.
type MediaStore interface {
	Store(ctx context.Context, file *media.LocalFile) (media.Ref, error)
	Remove(ctx context.Context, ref media.Ref) media.RemoveResult
}

// Notifier sends account notices. A nil *mailer.Mailer is a valid Notifier.
type Notifier interface {
	Welcome(to mailer.Recipient)
	PasswordChanged(to mailer.Recipient)
}

// Session is the result of a successful login.
type Session struct {
	User models.User `json:"user"`
	models.TokenPair
}

// UserService manages accounts and their single refresh-token slot.
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
	tokens   *TokenService
	media    MediaStore
	notifier Notifier
}

// NewUserService wires the users collection with its collaborators.
func NewUserService(users *mongo.Collection, tokens *TokenService, store MediaStore, notifier Notifier) *UserService {
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](users),
		tokens:               tokens,
		media:                store,
		notifier:             notifier,
	}
}

func publicProjection() *options.FindOneOptions {
	return options.FindOne().SetProjection(models.PublicFields)
}

func recipient(u *models.User) mailer.Recipient {
	return mailer.Recipient{Email: u.Email, FullName: u.FullName, Username: u.Username}
}

// FindPublic loads a user without secrets.
func (s *UserService) FindPublic(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, publicProjection())
}

// Register creates an account. The avatar is required, the cover image optional.
// Uploaded media is removed again when the account cannot be stored.
func (s *UserService) Register(ctx context.Context, input *authdto.RegisterInput, avatar, cover *media.LocalFile) (models.User, error) {
	defer media.Cleanup(avatar, cover)

	if avatar == nil {
		return models.User{}, common.BadRequest("Avatar file is required")
	}

	exists, err := s.DocumentExists(ctx, bson.M{"$or": []bson.M{
		{"username": input.Username},
		{"email": input.Email},
	}})
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, common.Conflict("User with email or username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, common.Internal("Failed to hash password", err)
	}

	avatarRef, err := s.media.Store(ctx, avatar)
	if err != nil {
		return models.User{}, err
	}
	var coverRef *media.Ref
	if cover != nil {
		ref, err := s.media.Store(ctx, cover)
		if err != nil {
			s.media.Remove(ctx, avatarRef).Log("auth")
			return models.User{}, err
		}
		coverRef = &ref
	}

	user, err := s.InsertOne(ctx, models.User{
		Username:   input.Username,
		Email:      input.Email,
		FullName:   input.FullName,
		Password:   string(hash),
		Avatar:     avatarRef,
		CoverImage: coverRef,
	})
	if err != nil {
		s.media.Remove(ctx, avatarRef).Log("auth")
		if coverRef != nil {
			s.media.Remove(ctx, *coverRef).Log("auth")
		}
		if common.IsDuplicate(err) {
			return models.User{}, common.Conflict("User with email or username already exists")
		}
		return models.User{}, err
	}

	s.notifier.Welcome(recipient(&user))
	return user, nil
}

// Login checks the credentials and opens a new session, replacing any previous one.
// Unknown identifiers and wrong passwords fail the same way.
func (s *UserService) Login(ctx context.Context, input *authdto.LoginInput) (*Session, error) {
	// one identifier only, so a username and an email of two accounts never mix
	var filter bson.M
	switch {
	case input.Username != "":
		filter = bson.M{"username": input.Username}
	case input.Email != "":
		filter = bson.M{"email": input.Email}
	default:
		return nil, common.BadRequest("username or email is required")
	}

	user, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(&user)
	if err != nil {
		return nil, err
	}

	updated, err := s.UpdateById(ctx, user.ID, &basesvc.UpdateData{
		Set: map[string]interface{}{"refreshToken": pair.RefreshToken},
	})
	if err != nil {
		return nil, err
	}
	return &Session{User: updated, TokenPair: pair}, nil
}

// Refresh rotates the session. The swap is conditional on the stored token so a
// replayed or concurrently used token fails.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if refreshToken == "" {
		return models.TokenPair{}, common.ErrTokenMissing
	}
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return models.TokenPair{}, common.ErrRefreshTokenInvalid
	}

	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.TokenPair{}, common.ErrRefreshTokenInvalid
		}
		return models.TokenPair{}, err
	}
	if user.RefreshToken != refreshToken {
		return models.TokenPair{}, common.ErrRefreshTokenUsed
	}

	pair, err := s.tokens.IssuePair(&user)
	if err != nil {
		return models.TokenPair{}, err
	}

	_, err = s.UpdateOne(ctx, bson.M{"_id": userID, "refreshToken": refreshToken}, &basesvc.UpdateData{
		Set: map[string]interface{}{"refreshToken": pair.RefreshToken},
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.TokenPair{}, common.ErrRefreshTokenUsed
		}
		return models.TokenPair{}, err
	}
	return pair, nil
}

// Logout clears the stored refresh token.
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Unset: map[string]interface{}{"refreshToken": 1},
	})
	return err
}

// Authenticate resolves an access token to its user.
func (s *UserService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	claims, err := s.tokens.ParseAccess(accessToken)
	if err != nil {
		return models.User{}, err
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return models.User{}, common.ErrTokenInvalid
	}
	user, err := s.FindPublic(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.User{}, common.ErrTokenInvalid
		}
		return models.User{}, err
	}
	return user, nil
}

// ChangePassword replaces the password after checking the old one.
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *authdto.ChangePasswordInput) error {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)) != nil {
		return common.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.Internal("Failed to hash password", err)
	}
	if _, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{"password": string(hash)},
	}); err != nil {
		return err
	}

	s.notifier.PasswordChanged(recipient(&user))
	return nil
}

// UpdateAccount changes fullName and email.
func (s *UserService) UpdateAccount(ctx context.Context, userID primitive.ObjectID, input *authdto.UpdateAccountInput) (models.User, error) {
	user, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"fullName": input.FullName,
			"email":    input.Email,
		},
	})
	if err != nil {
		if common.IsDuplicate(err) {
			return models.User{}, common.Conflict("Email is already in use")
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateAvatar stores file as the new avatar and removes the previous one.
func (s *UserService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, file *media.LocalFile) (models.User, error) {
	return s.replaceImage(ctx, userID, file, "avatar", "Avatar file is missing")
}

// UpdateCoverImage stores file as the new cover image and removes the previous one.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, file *media.LocalFile) (models.User, error) {
	return s.replaceImage(ctx, userID, file, "coverImage", "Cover image file is missing")
}

func (s *UserService) replaceImage(ctx context.Context, userID primitive.ObjectID, file *media.LocalFile, field, missing string) (models.User, error) {
	defer media.Cleanup(file)
	if file == nil {
		return models.User{}, common.BadRequest(missing)
	}

	current, err := s.FindOneById(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	ref, err := s.media.Store(ctx, file)
	if err != nil {
		return models.User{}, err
	}

	updated, err := s.UpdateById(ctx, userID, &basesvc.UpdateData{
		Set: map[string]interface{}{field: ref},
	})
	if err != nil {
		s.media.Remove(ctx, ref).Log("auth")
		return models.User{}, err
	}

	var previous media.Ref
	if field == "avatar" {
		previous = current.Avatar
	} else if current.CoverImage != nil {
		previous = *current.CoverImage
	}
	if !previous.IsZero() {
		if res := s.media.Remove(ctx, previous); !res.OK() {
			logger.WithContext(ctx).WithError(res.Err).WithFields(map[string]interface{}{
				"user_id":   userID.Hex(),
				"public_id": res.PublicID,
			}).Warn("Failed to remove previous " + field)
		}
	}
	return updated, nil
}
