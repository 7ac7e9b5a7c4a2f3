package tools

import "net/http"

// Catalog returns the tool definitions for the re:lation API. Field names
// are part of the remote wire contract and must not be renamed, with one
// exception: search_tickets accepts "statuses" and sends it as "status_cds".
func Catalog() []ToolDef {
	return []ToolDef{
		{
			Name:        "get_customers",
			Description: "List customer groups. A customer group is the container customers are registered under.",
			Method:      http.MethodGet,
			Path:        "/customer_groups",
			OnError:     SoftError("Failed to get customers"),
		},
		{
			Name:        "search_customers",
			Description: "Search customers in a customer group. All filters are optional and combined with AND.",
			Method:      http.MethodGet,
			Path:        "/customer_groups/{customer_group_id}/customers/search",
			OnError:     SoftError("Failed to search customers"),
			Params: []Param{
				{Name: "customer_group_id", Type: TypeString, Required: true, In: InPath,
					Description: "ID of the customer group to search in"},
				{Name: "customer_ids", Type: TypeNumberArray, In: InQuery,
					Description: "Filter by customer IDs"},
				{Name: "gender_cds", Type: TypeNumberArray, In: InQuery,
					Description: "Filter by gender codes (1: male, 2: female, 9: other)"},
				{Name: "emails", Type: TypeStringArray, In: InQuery,
					Description: "Filter by email addresses (exact match)"},
				{Name: "tels", Type: TypeStringArray, In: InQuery,
					Description: "Filter by telephone numbers (exact match)"},
				{Name: "badge_ids", Type: TypeNumberArray, In: InQuery,
					Description: "Filter by badge IDs"},
				{Name: "system_id1s", Type: TypeStringArray, In: InQuery,
					Description: "Filter by external system IDs"},
				{Name: "default_assignee_ids", Type: TypeNumberArray, In: InQuery,
					Description: "Filter by default assignee mention IDs"},
				{Name: "per_page", Type: TypeNumber, In: InQuery,
					Description: "Results per page (max 100, default 30)"},
				{Name: "page", Type: TypeNumber, In: InQuery,
					Description: "Page number (default 1)"},
			},
		},
		{
			Name:        "create_customer",
			Description: "Register a new customer in a customer group.",
			Method:      http.MethodPost,
			Path:        "/customer_groups/{customer_group_id}/customers/create",
			OnError:     Propagate,
			Params: []Param{
				{Name: "customer_group_id", Type: TypeString, Required: true, In: InPath,
					Description: "ID of the customer group to register the customer in"},
				{Name: "last_name", Type: TypeString, Required: true, In: InBody,
					Description: "Customer's last name"},
				{Name: "first_name", Type: TypeString, In: InBody,
					Description: "Customer's first name"},
				{Name: "gender_cd", Type: TypeNumber, In: InBody,
					Description: "Gender code (1: male, 2: female, 9: other)"},
				{Name: "emails", Type: TypeStringArray, In: InBody,
					Description: "Email addresses"},
				{Name: "tels", Type: TypeStringArray, In: InBody,
					Description: "Telephone numbers"},
				{Name: "badge_ids", Type: TypeNumberArray, In: InBody,
					Description: "Badge IDs to attach"},
				{Name: "system_id1", Type: TypeString, In: InBody,
					Description: "External system ID"},
				{Name: "default_assignee_id", Type: TypeNumber, In: InBody,
					Description: "Default assignee mention ID"},
				{Name: "address", Type: TypeObject, In: InBody,
					Description: "Postal address object, passed through to the API verbatim"},
			},
		},
		{
			Name:        "search_tickets",
			Description: "Search tickets in a message box. Statuses: open, in_progress, pending, done.",
			Method:      http.MethodPost,
			Path:        "/{message_box_id}/tickets/search",
			OnError:     SoftError("Failed to search tickets"),
			Params: []Param{
				{Name: "message_box_id", Type: TypeString, Required: true, In: InPath,
					Description: "ID of the message box to search in"},
				{Name: "statuses", Type: TypeStringArray, In: InBody, Rename: "status_cds",
					Description: "Filter by ticket statuses (open, in_progress, pending, done)"},
				{Name: "method_cds", Type: TypeStringArray, In: InBody,
					Description: "Filter by channel (mail, tweet, line, chat, call, sms, form)"},
				{Name: "label_ids", Type: TypeNumberArray, In: InBody,
					Description: "Filter by label IDs"},
				{Name: "assignee_ids", Type: TypeNumberArray, In: InBody,
					Description: "Filter by assignee mention IDs"},
				{Name: "customer_ids", Type: TypeNumberArray, In: InBody,
					Description: "Filter by customer IDs"},
				{Name: "since", Type: TypeString, In: InBody,
					Description: "Only tickets updated at or after this time (YYYY-MM-DD HH:MM:SS)"},
				{Name: "until", Type: TypeString, In: InBody,
					Description: "Only tickets updated at or before this time (YYYY-MM-DD HH:MM:SS)"},
				{Name: "per_page", Type: TypeNumber, In: InBody,
					Description: "Results per page (max 50, default 30)"},
				{Name: "page", Type: TypeNumber, In: InBody,
					Description: "Page number (default 1)"},
			},
		},
		{
			Name:        "search_templates",
			Description: "Search reply templates in a message box.",
			Method:      http.MethodGet,
			Path:        "/{message_box_id}/templates/search",
			OnError:     SoftError("Failed to search templates"),
			Params: []Param{
				{Name: "message_box_id", Type: TypeString, Required: true, In: InPath,
					Description: "ID of the message box to search in"},
				{Name: "template_category_ids", Type: TypeNumberArray, In: InQuery,
					Description: "Filter by template category IDs"},
				{Name: "per_page", Type: TypeNumber, In: InQuery,
					Description: "Results per page (max 100, default 30)"},
				{Name: "page", Type: TypeNumber, In: InQuery,
					Description: "Page number (default 1)"},
			},
		},
		{
			Name:        "send_email",
			Description: "Send a new email from a message box. Creates a ticket for the sent mail.",
			Method:      http.MethodPost,
			Path:        "/{message_box_id}/mails/create",
			OnError:     SoftError("Failed to send email"),
			Params: []Param{
				{Name: "message_box_id", Type: TypeString, Required: true, In: InPath,
					Description: "ID of the message box to send from"},
				{Name: "customer_id", Type: TypeNumber, In: InBody,
					Description: "ID of the customer the mail is addressed to"},
				{Name: "mail_account_id", Type: TypeNumber, Required: true, In: InBody,
					Description: "ID of the sending mail account"},
				{Name: "to", Type: TypeString, Required: true, In: InBody,
					Description: "Recipient email address"},
				{Name: "cc", Type: TypeString, In: InBody,
					Description: "CC addresses, comma separated"},
				{Name: "bcc", Type: TypeString, In: InBody,
					Description: "BCC addresses, comma separated"},
				{Name: "subject", Type: TypeString, Required: true, In: InBody,
					Description: "Mail subject"},
				{Name: "body", Type: TypeString, Required: true, In: InBody,
					Description: "Mail body (plain text)"},
				{Name: "reply_to", Type: TypeString, In: InBody,
					Description: "Reply-To address"},
			},
		},
		{
			Name:        "update_ticket",
			Description: "Update a ticket's status, assignee, labels, color, or snooze term.",
			Method:      http.MethodPatch,
			Path:        "/{message_box_id}/tickets/{ticket_id}",
			OnError:     Propagate,
			Params: []Param{
				{Name: "message_box_id", Type: TypeString, Required: true, In: InPath,
					Description: "ID of the message box containing the ticket"},
				{Name: "ticket_id", Type: TypeString, Required: true, In: InPath,
					Description: "ID of the ticket to update"},
				{Name: "status_cd", Type: TypeString, In: InBody,
					Description: "New status (open, in_progress, pending, done)"},
				{Name: "operation_status_cd", Type: TypeString, In: InBody,
					Description: "Operation status code"},
				{Name: "assignee_id", Type: TypeNumber, In: InBody,
					Description: "Mention ID of the new assignee"},
				{Name: "label_ids", Type: TypeNumberArray, In: InBody,
					Description: "Label IDs to set (replaces existing labels)"},
				{Name: "color_cd", Type: TypeString, In: InBody,
					Description: "Ticket color code"},
				{Name: "snooze_term", Type: TypeString, In: InBody,
					Description: "Snooze term (e.g. tomorrow, next_week, or YYYY-MM-DD)"},
			},
		},
		{
			Name:        "get_labels",
			Description: "List the labels defined in a message box.",
			Method:      http.MethodGet,
			Path:        "/{message_box_id}/labels",
			OnError:     SoftError("Failed to get labels"),
			Params: []Param{
				{Name: "message_box_id", Type: TypeString, Required: true, In: InPath,
					Description: "ID of the message box to list labels for"},
			},
		},
		{
			Name:        "get_users",
			Description: "List the users registered on the account.",
			Method:      http.MethodGet,
			Path:        "/users",
			OnError:     SoftError("Failed to get users"),
		},
		{
			Name:        "get_message_boxes",
			Description: "List the message boxes (inboxes) on the account.",
			Method:      http.MethodGet,
			Path:        "/message_boxes",
			OnError:     SoftError("Failed to get message boxes"),
		},
	}
}
