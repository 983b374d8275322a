package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/repository"
	"agromarket/internal/infrastructure/ratelimit"
	ws "agromarket/internal/infrastructure/websocket"
	"agromarket/pkg/errors"
)

// Fixed placeholders returned to the seller while a lead is locked.
const (
	MaskedEmail    = "••••••@••••.com"
	MaskedPhone    = "(••) •••••-••••"
	MaskedWhatsApp = "BLOQUEADO"
)

type LeadUseCase struct {
	leadRepo   repository.LeadRepository
	chatRepo   repository.ChatRepository
	userRepo   repository.UserRepository
	creditRepo repository.CreditRepository
	txnRepo     repository.CreditTransactionRepository
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
	unlockCost  int

	// Per-user serialization of unlock attempts. The balance deduction
	// itself is transactional; this keeps concurrent unlocks by the same
	// seller from double-charging before the lead flips.
	userLocks sync.Map
}

func NewLeadUseCase(
	leadRepo repository.LeadRepository,
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	creditRepo repository.CreditRepository,
	txnRepo repository.CreditTransactionRepository,
	wsManager *ws.Manager,
	unlockCost int,
) *LeadUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &LeadUseCase{
		leadRepo:    leadRepo,
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		creditRepo:  creditRepo,
		txnRepo:     txnRepo,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
		unlockCost:  unlockCost,
	}
}

func (uc *LeadUseCase) lockFor(userID string) *sync.Mutex {
	lock, _ := uc.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// UnlockLead charges the seller and flips the lead to unlocked.
// Unlocking an already unlocked lead is a no-op success. Sellers on the
// harvest plan unlock for free.
func (uc *LeadUseCase) UnlockLead(ctx context.Context, callerID, chatID string) (*entity.Lead, error) {
	allowed, waitTime := uc.rateLimiter.Allow(callerID, "unlock_lead")
	if !allowed {
		log.Printf("UnlockLead Rate Limited: User %s must wait %v", callerID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before unlocking another lead")
	}

	lead, err := uc.leadRepo.GetByChatID(ctx, chatID)
	if err != nil {
		log.Printf("UnlockLead Error: Lead for chat %s not found: %v", chatID, err)
		return nil, err
	}

	if callerID != lead.SellerID {
		log.Printf("UnlockLead Error: User %s is not the seller of chat %s", callerID, chatID)
		return nil, errors.Unauthorized("Only the seller can unlock a lead", nil)
	}

	if lead.IsUnlocked() {
		return lead, nil
	}

	seller, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	lock := uc.lockFor(callerID)
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock; another request may have just unlocked.
	lead, err = uc.leadRepo.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if lead.IsUnlocked() {
		return lead, nil
	}

	cost := uc.unlockCost
	if seller.HasUnlimitedUnlocks() {
		cost = 0
	}

	var balance *entity.CreditBalance
	if cost > 0 {
		balance, err = uc.creditRepo.DeductIfSufficient(ctx, callerID, cost)
		if err != nil {
			log.Printf("UnlockLead Error: Deduction failed for user %s: %v", callerID, err)
			return nil, err
		}
	}

	now := time.Now()
	lead.Status = entity.LeadStatusUnlocked
	lead.UnlockedAt = &now
	lead.CostInCredits = cost

	if err := uc.leadRepo.Update(ctx, lead); err != nil {
		log.Printf("UnlockLead Error: Failed to update lead %s: %v", chatID, err)
		if cost > 0 {
			if _, refundErr := uc.creditRepo.AddBalance(ctx, callerID, cost); refundErr != nil {
				log.Printf("UnlockLead Error: Refund of %d credits to user %s failed: %v", cost, callerID, refundErr)
			}
		}
		return nil, err
	}

	if cost > 0 {
		txn := &entity.CreditTransaction{
			UserID:          callerID,
			Type:            "deduct",
			Amount:          cost,
			PreviousBalance: balance.Balance + cost,
			NewBalance:      balance.Balance,
			Reference:       chatID,
			Description:     "Desbloqueio de lead",
		}
		if err := uc.txnRepo.Create(ctx, txn); err != nil {
			log.Printf("UnlockLead Warning: Failed to record credit transaction for user %s: %v", callerID, err)
		}
	}

	// The chat mirrors the lead status so clients see the unlock
	// without a second lookup.
	if chat, chatErr := uc.chatRepo.GetByID(ctx, chatID); chatErr == nil {
		chat.Status = entity.LeadStatusUnlocked
		if updateErr := uc.chatRepo.Update(ctx, chat); updateErr != nil {
			log.Printf("UnlockLead Warning: Failed to sync chat %s status: %v", chatID, updateErr)
		}
	}

	if uc.wsManager != nil {
		uc.wsManager.SendEventToUser(lead.SellerID, ws.EventLeadUnlock, lead)
	}

	return lead, nil
}

// GetContactInfo resolves the counterpart's contact details for a chat
// participant. Buyers always see the seller's real contact. Sellers see
// fixed masked placeholders until the lead is unlocked.
func (uc *LeadUseCase) GetContactInfo(ctx context.Context, requesterID, chatID string) (*entity.ContactInfo, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !chat.IsParticipant(requesterID) {
		return nil, errors.Unauthorized("You are not a participant of this conversation", nil)
	}

	otherID := chat.OtherParticipant(requesterID)

	if requesterID == chat.SellerID {
		lead, err := uc.leadRepo.GetByChatID(ctx, chatID)
		if err != nil {
			return nil, err
		}
		if !lead.IsUnlocked() {
			return &entity.ContactInfo{
				Email:    MaskedEmail,
				Phone:    MaskedPhone,
				WhatsApp: MaskedWhatsApp,
			}, nil
		}
	}

	other, err := uc.userRepo.GetByID(ctx, otherID)
	if err != nil {
		log.Printf("GetContactInfo Error: User %s not found: %v", otherID, err)
		return nil, err
	}

	return &entity.ContactInfo{
		Email:    other.Email,
		Phone:    formatPhone(other.Phone),
		WhatsApp: other.WhatsApp,
	}, nil
}

// formatPhone renders an 10/11-digit number as (DD) NNNNN-NNNN. Other
// shapes pass through unchanged.
func formatPhone(digits string) string {
	switch len(digits) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:7], digits[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:6], digits[6:])
	}
	return digits
}
