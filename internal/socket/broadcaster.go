package socket

// Broadcaster provides high-level methods for pushing domain events
// to connected members.
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// SendNotification pushes a stored notification to a member.
func (b *Broadcaster) SendNotification(memberID string, notification map[string]interface{}) {
	b.hub.SendToMember(memberID, MessageNotification, notification)
}

// SendCommissionCredited notifies an upline member of a new commission.
func (b *Broadcaster) SendCommissionCredited(memberID string, purchaseID string, level int, amount int64) {
	b.hub.SendToMember(memberID, MessageCommissionCredited, map[string]interface{}{
		"purchaseId": purchaseID,
		"level":      level,
		"amount":     amount,
	})
}

// SendWithdrawalUpdated notifies a member that their withdrawal changed status.
func (b *Broadcaster) SendWithdrawalUpdated(memberID string, withdrawalID string, status string) {
	b.hub.SendToMember(memberID, MessageWithdrawalUpdated, map[string]interface{}{
		"withdrawalId": withdrawalID,
		"status":       status,
	})
}

// SendPurchaseCompleted notifies the buyer that their purchase completed.
func (b *Broadcaster) SendPurchaseCompleted(memberID string, purchaseID string, productName string) {
	b.hub.SendToMember(memberID, MessagePurchaseCompleted, map[string]interface{}{
		"purchaseId":  purchaseID,
		"productName": productName,
	})
}

// SendMemberVerified notifies a sponsor that their subscription is now verified.
func (b *Broadcaster) SendMemberVerified(memberID string) {
	b.hub.SendToMember(memberID, MessageMemberVerified, map[string]interface{}{
		"subscriptionsVerified": true,
	})
}
