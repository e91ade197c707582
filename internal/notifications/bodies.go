package notifications

import (
	"fmt"
	"strings"

	"github.com/lisatcreative/printshop-backend/pkg/config"
	"github.com/lisatcreative/printshop-backend/pkg/db/models"
	"github.com/lisatcreative/printshop-backend/pkg/enums"
)

func formatCents(cents int) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func itemLines(order *models.Order) string {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("- %s (%s, %s) x%d = %s",
			item.Title, item.Size.Label(), item.Frame.Display(), item.Quantity, formatCents(item.LineTotalCents)))
	}
	return strings.Join(lines, "\n")
}

func shippingLine(order *models.Order) string {
	if order.FulfillmentMethod == enums.FulfillmentPickup {
		return "Pickup: FREE"
	}
	if order.ShippingCents == 0 {
		return "Delivery: FREE"
	}
	return fmt.Sprintf("Delivery: %s", formatCents(order.ShippingCents))
}

func orderSummary(order *models.Order) string {
	return fmt.Sprintf(`ORDER SUMMARY:
Subtotal: %s
%s
GST (5%%): %s
TOTAL: %s`,
		formatCents(order.SubtotalCents),
		shippingLine(order),
		formatCents(order.TaxCents),
		formatCents(order.TotalCents))
}

func addressBlock(order *models.Order) string {
	addr := order.ShippingAddress
	if addr == nil {
		return ""
	}
	return fmt.Sprintf("%s\n%s, %s %s\n%s", addr.Line1, addr.City, addr.Province, addr.PostalCode, addr.Country)
}

// merchantBody is the new-order notice sent to the shop owner. It carries
// everything needed to process the order without opening the admin.
func merchantBody(order *models.Order, merchant config.MerchantConfig) string {
	var fulfillment string
	if order.FulfillmentMethod == enums.FulfillmentPickup {
		fulfillment = fmt.Sprintf(`PICKUP INFORMATION:
Customer will pick up order in %s
Contact customer at: %s or %s`,
			merchant.PickupLocation, order.CustomerEmail, order.CustomerPhone)
	} else {
		fulfillment = fmt.Sprintf(`DELIVERY ADDRESS:
%s

SHIPPING ZONE: %s
ESTIMATED DELIVERY: %s`,
			addressBlock(order), order.ZoneName, order.DeliveryWindow)
	}

	return fmt.Sprintf(`NEW ORDER RECEIVED - %s

CUSTOMER INFORMATION:
Name: %s %s
Email: %s
Phone: %s

%s

ORDER ITEMS:
%s

%s

PAYMENT INSTRUCTIONS:
Customer should send e-transfer for %s to: %s

Security Question: What is my business name?
Answer: %s

Process order once payment is received.`,
		order.OrderNumber,
		order.CustomerFirstName, order.CustomerLastName,
		order.CustomerEmail,
		order.CustomerPhone,
		fulfillment,
		itemLines(order),
		orderSummary(order),
		formatCents(order.TotalCents), merchant.ETransferEmail,
		merchant.SecurityAnswer)
}

// customerBody is the order confirmation with e-transfer payment steps.
func customerBody(order *models.Order, merchant config.MerchantConfig) string {
	var fulfillment, readyWord, trackingWord, statusWord string
	if order.FulfillmentMethod == enums.FulfillmentPickup {
		fulfillment = fmt.Sprintf(`PICKUP DETAILS:
Once we receive your payment, we'll contact you to arrange pickup in %s.`, merchant.PickupLocation)
		readyWord = "ready for pickup"
		trackingWord = "pickup"
		statusWord = "is ready"
	} else {
		fulfillment = fmt.Sprintf(`DELIVERY DETAILS:
Your order will be shipped to:
%s

Estimated delivery: %s`, addressBlock(order), order.DeliveryWindow)
		readyWord = "shipped"
		trackingWord = "tracking"
		statusWord = "ships"
	}

	return fmt.Sprintf(`Thank you for your order!

ORDER CONFIRMATION - %s

Hi %s %s,

Thank you for your order from %s! We've received your order and are excited to get it ready for you.

YOUR ORDER:
%s

%s

PAYMENT INSTRUCTIONS:
Please send an Interac e-transfer for %s to:
%s

Security Question: What is my business name?
Answer: %s

%s

WHAT'S NEXT?
1. Send the e-transfer payment to %s
2. We'll confirm receipt of payment within 24 hours
3. Your order will be processed and %s within 3-5 business days
4. You'll receive %s information once your order %s

Questions? Feel free to reach out:
Email: %s
Phone: %s

Thank you for supporting %s!

Best regards,
%s
%s`,
		order.OrderNumber,
		order.CustomerFirstName, order.CustomerLastName,
		merchant.BusinessName,
		itemLines(order),
		orderSummary(order),
		formatCents(order.TotalCents),
		merchant.ETransferEmail,
		merchant.SecurityAnswer,
		fulfillment,
		merchant.ETransferEmail,
		readyWord,
		trackingWord, statusWord,
		merchant.ETransferEmail,
		merchant.Phone,
		merchant.BusinessName,
		merchant.BusinessName,
		merchant.PickupLocation)
}
