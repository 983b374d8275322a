package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"agromarket/internal/domain/entity"
	"agromarket/pkg/errors"
)

// In-memory repository fakes. They mirror the defaulting behavior of
// the Firestore implementations (generated IDs, timestamps, unread map
// initialization) so use cases behave the same under test.

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	repo := &memUserRepo{users: map[string]*entity.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

type memAdRepo struct {
	ads map[string]*entity.Ad
}

func newMemAdRepo(ads ...*entity.Ad) *memAdRepo {
	repo := &memAdRepo{ads: map[string]*entity.Ad{}}
	for _, ad := range ads {
		repo.ads[ad.ID] = ad
	}
	return repo
}

func (r *memAdRepo) Create(ctx context.Context, ad *entity.Ad) error {
	r.ads[ad.ID] = ad
	return nil
}

func (r *memAdRepo) GetByID(ctx context.Context, id string) (*entity.Ad, error) {
	ad, ok := r.ads[id]
	if !ok {
		return nil, errors.NotFound("Ad", nil)
	}
	return ad, nil
}

func (r *memAdRepo) Update(ctx context.Context, ad *entity.Ad) error {
	r.ads[ad.ID] = ad
	return nil
}

func (r *memAdRepo) UpdatePrice(ctx context.Context, id string, price float64) (*entity.Ad, error) {
	ad, ok := r.ads[id]
	if !ok {
		return nil, errors.NotFound("Ad", nil)
	}
	ad.Price = price
	return ad, nil
}

type memChatRepo struct {
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{
		chats:    map[string]*entity.Chat{},
		messages: map[string][]*entity.Message{},
	}
}

func (r *memChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.UnreadCount == nil {
		chat.UnreadCount = map[string]int{
			chat.SellerID: 0,
			chat.BuyerID:  0,
		}
	}
	chat.Participants = []string{chat.SellerID, chat.BuyerID}
	chat.CreatedAt = time.Now()
	r.chats[chat.ID] = chat
	return nil
}

func (r *memChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	return chat, nil
}

func (r *memChatRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	var result []*entity.Chat
	for _, chat := range r.chats {
		if chat.IsParticipant(userID) {
			result = append(result, chat)
		}
	}
	return result, int64(len(result)), nil
}

func (r *memChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	r.chats[chat.ID] = chat
	return nil
}

func (r *memChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	r.messages[message.ChatID] = append(r.messages[message.ChatID], message)
	return nil
}

func (r *memChatRepo) GetMessagesByChat(ctx context.Context, chatID string) ([]*entity.Message, error) {
	messages := []*entity.Message{}
	return append(messages, r.messages[chatID]...), nil
}

func (r *memChatRepo) MarkMessagesRead(ctx context.Context, chatID, readerID string) error {
	for _, message := range r.messages[chatID] {
		if message.SenderID != readerID {
			message.IsRead = true
		}
	}
	return nil
}

type memLeadRepo struct {
	leads map[string]*entity.Lead

	failUpdate bool
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{leads: map[string]*entity.Lead{}}
}

func (r *memLeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	lead.CreatedAt = time.Now()
	r.leads[lead.ChatID] = lead
	return nil
}

func (r *memLeadRepo) GetByChatID(ctx context.Context, chatID string) (*entity.Lead, error) {
	lead, ok := r.leads[chatID]
	if !ok {
		return nil, errors.NotFound("Lead", nil)
	}
	copied := *lead
	return &copied, nil
}

func (r *memLeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	if r.failUpdate {
		return errors.Internal("Simulated lead update failure", nil)
	}
	r.leads[lead.ChatID] = lead
	return nil
}

type memCreditRepo struct {
	balances map[string]int
}

func newMemCreditRepo() *memCreditRepo {
	return &memCreditRepo{balances: map[string]int{}}
}

func (r *memCreditRepo) GetBalance(ctx context.Context, userID string) (*entity.CreditBalance, error) {
	return &entity.CreditBalance{UserID: userID, Balance: r.balances[userID]}, nil
}

func (r *memCreditRepo) AddBalance(ctx context.Context, userID string, amount int) (*entity.CreditBalance, error) {
	r.balances[userID] += amount
	return &entity.CreditBalance{UserID: userID, Balance: r.balances[userID]}, nil
}

func (r *memCreditRepo) DeductBalance(ctx context.Context, userID string, amount int) (*entity.CreditBalance, error) {
	r.balances[userID] -= amount
	if r.balances[userID] < 0 {
		r.balances[userID] = 0
	}
	return &entity.CreditBalance{UserID: userID, Balance: r.balances[userID]}, nil
}

func (r *memCreditRepo) DeductIfSufficient(ctx context.Context, userID string, amount int) (*entity.CreditBalance, error) {
	if r.balances[userID] < amount {
		return nil, errors.InsufficientCredits(amount, r.balances[userID])
	}
	r.balances[userID] -= amount
	return &entity.CreditBalance{UserID: userID, Balance: r.balances[userID]}, nil
}

type memCreditTxnRepo struct {
	txns []*entity.CreditTransaction
}

func newMemCreditTxnRepo() *memCreditTxnRepo {
	return &memCreditTxnRepo{}
}

func (r *memCreditTxnRepo) Create(ctx context.Context, txn *entity.CreditTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	txn.CreatedAt = time.Now()
	r.txns = append(r.txns, txn)
	return nil
}

func (r *memCreditTxnRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.CreditTransaction, int64, error) {
	var result []entity.CreditTransaction
	for _, txn := range r.txns {
		if txn.UserID == userID {
			result = append(result, *txn)
		}
	}
	return result, int64(len(result)), nil
}

type memFavoriteRepo struct {
	favorites map[string]*entity.Favorite
}

func newMemFavoriteRepo() *memFavoriteRepo {
	return &memFavoriteRepo{favorites: map[string]*entity.Favorite{}}
}

func (r *memFavoriteRepo) Create(ctx context.Context, favorite *entity.Favorite) error {
	if favorite.ID == "" {
		favorite.ID = uuid.New().String()
	}
	favorite.FavoritedAt = time.Now()
	r.favorites[favorite.ID] = favorite
	return nil
}

func (r *memFavoriteRepo) Delete(ctx context.Context, id string) error {
	delete(r.favorites, id)
	return nil
}

func (r *memFavoriteRepo) GetByUserAndAd(ctx context.Context, userID, adID string) (*entity.Favorite, error) {
	for _, favorite := range r.favorites {
		if favorite.UserID == userID && favorite.AdID == adID {
			return favorite, nil
		}
	}
	return nil, errors.NotFound("Favorite", nil)
}

func (r *memFavoriteRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	var result []*entity.Favorite
	for _, favorite := range r.favorites {
		if favorite.UserID == userID {
			result = append(result, favorite)
		}
	}
	return result, nil
}

func (r *memFavoriteRepo) ListAll(ctx context.Context) ([]*entity.Favorite, error) {
	var result []*entity.Favorite
	for _, favorite := range r.favorites {
		result = append(result, favorite)
	}
	return result, nil
}

func (r *memFavoriteRepo) ListByAdID(ctx context.Context, adID string) ([]*entity.Favorite, error) {
	var result []*entity.Favorite
	for _, favorite := range r.favorites {
		if favorite.AdID == adID {
			result = append(result, favorite)
		}
	}
	return result, nil
}

type memNotificationRepo struct {
	notifications []*entity.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{}
}

func (r *memNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *memNotificationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	var result []*entity.Notification
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			result = append(result, notification)
		}
	}
	return result, int64(len(result)), nil
}

func (r *memNotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	for _, notification := range r.notifications {
		if notification.ID == notificationID && notification.UserID == userID {
			notification.IsRead = true
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *memNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			notification.IsRead = true
		}
	}
	return nil
}

type memHistoryRepo struct {
	records []*entity.PriceDropNotification
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{}
}

func (r *memHistoryRepo) Create(ctx context.Context, record *entity.PriceDropNotification) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	r.records = append(r.records, record)
	return nil
}

func (r *memHistoryRepo) GetLatest(ctx context.Context, userID, adID string) (*entity.PriceDropNotification, error) {
	var latest *entity.PriceDropNotification
	for _, record := range r.records {
		if record.UserID != userID || record.AdID != adID {
			continue
		}
		if latest == nil || record.NotifiedAt.After(latest.NotifiedAt) {
			latest = record
		}
	}
	if latest == nil {
		return nil, errors.NotFound("Price drop record", nil)
	}
	return latest, nil
}

func (r *memHistoryRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.PriceDropNotification, error) {
	var result []*entity.PriceDropNotification
	for _, record := range r.records {
		if record.UserID == userID {
			result = append(result, record)
		}
	}
	return result, nil
}

type memOpportunityRepo struct {
	opportunities map[string]*entity.Opportunity
}

func newMemOpportunityRepo() *memOpportunityRepo {
	return &memOpportunityRepo{opportunities: map[string]*entity.Opportunity{}}
}

func (r *memOpportunityRepo) key(userID, adID string) string {
	return userID + "_" + adID
}

const maxOpportunitiesPerUser = 20

func (r *memOpportunityRepo) Mark(ctx context.Context, userID, adID string, markedAt time.Time) error {
	r.opportunities[r.key(userID, adID)] = &entity.Opportunity{
		UserID:   userID,
		AdID:     adID,
		MarkedAt: markedAt,
	}

	// Oldest markers beyond the per-user cap are dropped on insert,
	// matching the Firestore implementation.
	var mine []*entity.Opportunity
	for _, opportunity := range r.opportunities {
		if opportunity.UserID == userID {
			mine = append(mine, opportunity)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].MarkedAt.After(mine[j].MarkedAt) })
	for _, opportunity := range mine[min(len(mine), maxOpportunitiesPerUser):] {
		delete(r.opportunities, r.key(opportunity.UserID, opportunity.AdID))
	}
	return nil
}

func (r *memOpportunityRepo) Get(ctx context.Context, userID, adID string) (*entity.Opportunity, error) {
	opportunity, ok := r.opportunities[r.key(userID, adID)]
	if !ok {
		return nil, errors.NotFound("Opportunity", nil)
	}
	return opportunity, nil
}

func (r *memOpportunityRepo) Remove(ctx context.Context, userID, adID string) error {
	delete(r.opportunities, r.key(userID, adID))
	return nil
}

type memSMTPConfigRepo struct {
	config *entity.SMTPConfig
}

func (r *memSMTPConfigRepo) Get(ctx context.Context) (*entity.SMTPConfig, error) {
	if r.config == nil {
		return nil, errors.NotFound("SMTP configuration", nil)
	}
	copied := *r.config
	return &copied, nil
}

func (r *memSMTPConfigRepo) Save(ctx context.Context, config *entity.SMTPConfig) error {
	r.config = config
	return nil
}

// fakeEmailService records sends and can be told to fail.
type fakeEmailService struct {
	sent []string
	fail bool
}

func (s *fakeEmailService) SendPriceDropAlert(ctx context.Context, to, userName string, drop *entity.PriceDropNotification) error {
	if s.fail {
		return errors.TransportFailure("Simulated SMTP failure", nil)
	}
	s.sent = append(s.sent, to)
	return nil
}

func (s *fakeEmailService) SendTestEmail(ctx context.Context, to string) error {
	if s.fail {
		return errors.TransportFailure("Simulated SMTP failure", nil)
	}
	s.sent = append(s.sent, to)
	return nil
}

func (s *fakeEmailService) TestConnection(ctx context.Context, config *entity.SMTPConfig) error {
	if s.fail {
		return errors.TransportFailure("Simulated SMTP failure", nil)
	}
	return nil
}
