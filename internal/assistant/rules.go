package assistant

import (
	"slices"
	"strings"

	"github.com/Skufu/nidhaan-assistant/internal/format"
)

// Rule pairs trigger phrases with a canned reply. Rules are evaluated in
// table order and the first match wins, so order encodes priority.
type Rule struct {
	ID      string
	Phrases []string
	Reply   func() string
}

// Matches reports whether any phrase occurs in an already normalized question.
func (r Rule) Matches(normalized string) bool {
	for _, p := range r.Phrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

func literal(html string) func() string {
	return func() string { return html }
}

func markdown(text string) func() string {
	return func() string { return format.ToHTML(text) }
}

var ruleDB = []Rule{
	{
		ID:      "contact",
		Phrases: []string{"contact", "phone", "email", "address", "reach", "support"},
		Reply:   literal(contactReply),
	},
	{
		ID:      "order_medicine",
		Phrases: []string{"order medicine", "buy medicine", "purchase medicine", "how to order", "medicine delivery"},
		Reply:   literal(orderMedicineReply),
	},
	{
		ID:      "appointment",
		Phrases: []string{"appointment", "book appointment", "schedule", "booking"},
		Reply:   literal(appointmentReply),
	},
	{
		ID:      "plans",
		Phrases: []string{"plan", "plans", "healthcare plan", "subscription", "package"},
		Reply:   literal(plansReply),
	},
	{
		ID:      "company_info",
		Phrases: []string{"about company", "about nidhaan", "company details", "services", "what is nidhaan"},
		Reply:   markdown(companyInfoMarkdown),
	},
	{
		ID:      "thanks",
		Phrases: []string{"thank you", "thanks", "appreciate", "grateful"},
		Reply:   markdown(thanksMarkdown),
	},
}

// Rules returns a copy of the fixed rule table in priority order.
func Rules() []Rule {
	out := make([]Rule, len(ruleDB))
	for i, r := range ruleDB {
		r.Phrases = slices.Clone(r.Phrases)
		out[i] = r
	}
	return out
}

const contactReply = `<p><strong>Contact Nidhaan Healthcare 24/7:</strong></p>
<ul>
<li><strong>Phone:</strong> [YOUR_PHONE_NUMBER]</li>
<li><strong>Email:</strong> support@nidhaan.com</li>
<li><strong>Website:</strong> [YOUR_WEBSITE_URL]</li>
</ul>
<p>Our support team is always ready to help!</p>`

const orderMedicineReply = `<p><strong>Order Medicines in 4 Simple Steps:</strong></p>
<ol>
<li><strong>Search:</strong> Browse 100,000+ medicines</li>
<li><strong>Select:</strong> Add to cart & upload prescription</li>
<li><strong>Address:</strong> Enter delivery details</li>
<li><strong>Payment:</strong> Pay online or cash on delivery</li>
</ol>
<p><strong>Get delivery within 1 hour!</strong></p>
<p><a href="[YOUR_MEDICINE_ORDER_URL]">Order Now →</a></p>`

const appointmentReply = `<p><strong>Book Your Appointment Instantly:</strong></p>
<ul>
<li><strong>Doctor Consultation:</strong> Video calls with specialists</li>
<li><strong>Lab Tests:</strong> Home sample collection</li>
<li><strong>Mental Health:</strong> Professional counseling sessions</li>
</ul>
<p><strong>Available 24/7 - Get response in 10 minutes!</strong></p>
<p>Choose your specialist and book now.</p>`

const plansReply = `<p><strong>Nidhaan Healthcare Plans:</strong></p>
<ul>
<li><strong>Basic Plan:</strong> Medicine delivery + Doctor consultation</li>
<li><strong>Premium Plan:</strong> All services + Priority support</li>
<li><strong>Family Plan:</strong> Cover entire family at discounted rates</li>
</ul>
<p><strong>Special Offers:</strong> First month 50% off!</p>
<p>Contact us for personalized plan recommendations.</p>`

const companyInfoMarkdown = `Welcome to **Nidhaan Healthcare** - Your Complete Digital Health Companion!

Nidhaan is an all-in-one digital healthcare platform designed to make medical services more accessible and convenient. We bring essential healthcare services right to your fingertips, especially during emergencies or in remote areas.

**Our Core Services:**
**Medicine Delivery** - 100000+ medicines delivered within 1 hour
**Doctor Consultation** - Video consultations with qualified doctors
**Lab Tests** - Home sample collection with WhatsApp report delivery
**Mental Health Support** - Professional counseling sessions
**Wellness & Fitness** - Coming soon!

**Our Mission:** To simplify healthcare with speed, trust, and convenience. We aim to become India's most trusted digital health platform, reaching rural areas and saving lives through accessibility and innovation.

**Why Choose Nidhaan?**
24/7 availability
Fast and reliable service
Qualified healthcare professionals
Secure and private
Affordable pricing`

const thanksMarkdown = `You're most welcome! Thank you for choosing **Nidhaan Healthcare**!

We're delighted to be part of your healthcare journey. Your trust means everything to us, and we're committed to providing you with the best possible service.

**Our Promise to You:**
**Quality Care**: Always prioritizing your health and well-being
**Reliable Service**: Consistent and dependable healthcare support
**Continuous Improvement**: Always working to serve you better
**Compassionate Care**: Treating every user like family

**How We're Here for You:**
• 24/7 customer support
• Quick response to your needs
• Constantly improving our services
• Listening to your feedback
• Making healthcare more accessible

**Stay Connected:**
Download our app for easier access
Enable notifications for important updates
Share your experience with others
Feel free to reach out anytime

Thank you for being part of the Nidhaan family! We're here whenever you need us. Take care and stay healthy!

Is there anything else I can help you with today?`
