package domain

// CustomerDetails is the customer master record, keyed by GSTIN.
type CustomerDetails struct {
	GSTIN     string `json:"gstin" db:"gstin"`
	Name      string `json:"name" db:"name"`
	Address   string `json:"address" db:"address"`
	State     string `json:"state" db:"state"`
	StateCode string `json:"stateCode" db:"state_code"`
	Phone     string `json:"phone,omitempty" db:"phone"`
	Email     string `json:"email,omitempty" db:"email"`
}

// InvoiceItem is a single billed line. Amount is derived from Quantity and Rate.
type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	HSNCode     string  `json:"hsnCode"`
	Quantity    float64 `json:"quantity"`
	Unit        Unit    `json:"unit"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Recalculate sets Amount from Quantity and Rate.
func (i *InvoiceItem) Recalculate() {
	i.Amount = i.Quantity * i.Rate
}

// SupplierBlock is the "details of supplier" block printed on the invoice.
type SupplierBlock struct {
	GSTIN   string `json:"gstin"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RecipientBlock is the "details of recipient" block.
type RecipientBlock struct {
	GSTIN         string `json:"gstin"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	PlaceOfSupply string `json:"placeOfSupply"`
}

// DispatchBlock is the "dispatch from" block.
type DispatchBlock struct {
	Address string `json:"address"`
}

// ShipToBlock is the "ship to" block.
type ShipToBlock struct {
	GSTIN   string `json:"gstin"`
	Address string `json:"address"`
}

// InvoiceData is an issued invoice. It is a snapshot: the embedded customer
// and the four address blocks are copies taken at generation time.
type InvoiceData struct {
	ID                string          `json:"id"`
	InvoiceNumber     string          `json:"invoiceNumber"`
	Date              string          `json:"date"`
	BillNo            string          `json:"billNo"`
	TruckNo           string          `json:"truckNo"`
	PlaceOfSupply     string          `json:"placeOfSupply"`
	ReverseCharge     bool            `json:"reverseCharge"`
	Customer          CustomerDetails `json:"customer"`
	Items             []InvoiceItem   `json:"items"`
	CGST              float64         `json:"cgst"`
	SGST              float64         `json:"sgst"`
	IGST              float64         `json:"igst"`
	TotalTaxableValue float64         `json:"totalTaxableValue"`
	TotalAmount       float64         `json:"totalAmount"`
	AmountInWords     string          `json:"amountInWords"`
	Supplier          SupplierBlock   `json:"supplier"`
	Recipient         RecipientBlock  `json:"recipient"`
	DispatchFrom      DispatchBlock   `json:"dispatchFrom"`
	ShipTo            ShipToBlock     `json:"shipTo"`
}

// Clone returns a deep copy of the invoice.
func (inv *InvoiceData) Clone() InvoiceData {
	out := *inv
	if inv.Items != nil {
		out.Items = make([]InvoiceItem, len(inv.Items))
		copy(out.Items, inv.Items)
	}
	return out
}

// BankDetails holds the issuer's bank account printed on invoices.
type BankDetails struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	Branch        string `json:"branch"`
}

// CompanyDetails is the issuing entity's static identity.
type CompanyDetails struct {
	Name          string      `json:"name"`
	Address       string      `json:"address"`
	GSTIN         string      `json:"gstin"`
	Mobile        string      `json:"mobile"`
	Email         string      `json:"email"`
	HomeState     string      `json:"homeState"`
	HomeStateCode string      `json:"homeStateCode"`
	BankDetails   BankDetails `json:"bankDetails"`
}

// SupplierBlock returns the supplier block derived from the company identity.
func (c *CompanyDetails) SupplierBlock() SupplierBlock {
	return SupplierBlock{GSTIN: c.GSTIN, Name: c.Name, Address: c.Address}
}

// TransferBundle is the bulk export/import format. A nil slice means the
// collection was absent from the payload.
type TransferBundle struct {
	Customers []CustomerDetails `json:"customers"`
	Invoices  []InvoiceData     `json:"invoices"`
}
