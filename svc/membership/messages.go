package membership

import "fmt"

func confirmationText(expiry Date, groupLink string) string {
	return fmt.Sprintf("✅ Payment confirmed. Membership valid till %s.\nJoin Premium: %s", expiry, groupLink)
}

func reminderText(expiry Date, daysLeft int, url string) string {
	return fmt.Sprintf("⚠️ Reminder: Your Premium membership will expire on %s (%d days left).\n\n💳 Renew now: %s", expiry, daysLeft, url)
}

func earlyRenewalText(memberID string, expiry Date) string {
	return fmt.Sprintf("ℹ️ Early renewal: member %s extended until %s.", memberID, expiry)
}

func expiresTodayText(memberID string, expiry Date) string {
	return fmt.Sprintf("⏰ Membership of member %s expires today (%s).", memberID, expiry)
}
