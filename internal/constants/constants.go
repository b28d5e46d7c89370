package constants

import "time"

// Selectors locate the script-rendered speaker widgets on nft.nyc track
// pages. The widgets come from the Sessionize embed, hence the sz- prefixes.
var Selectors = struct {
	SpeakerBlock string
	SpeakerName  string
	SpeakerTag   string
	SpeakerImage string
	Modal        string
	ModalName    string
	ModalLinks   string
	ModalClose   string
	ModalOverlay string
	CookieBanner string
	CookieAccept string
}{
	SpeakerBlock: "[data-speakerid]",
	SpeakerName:  "h3.sz-speaker__name",
	SpeakerTag:   "h4.sz-speaker__tagline",
	SpeakerImage: "img",
	Modal:        "div.sz-speaker.sz-speaker--full",
	ModalName:    "h3.sz-speaker__name",
	ModalLinks:   "ul.sz-speaker__links a[href]",
	ModalClose:   "button.sz-modal__close",
	ModalOverlay: ".sz-modal-overlay",
	CookieBanner: "#hs-eu-cookie-confirmation",
	CookieAccept: "#hs-eu-cookie-confirmation button, #hs-eu-cookie-confirmation a",
}

// FixedWaits are the short, non-configurable waits used while dismissing
// overlays. The main pacing delays live in the configuration instead.
var FixedWaits = struct {
	CookieBanner time.Duration
	CookieSettle time.Duration
	CloseButton  time.Duration
	Overlay      time.Duration
	EscapeSettle time.Duration
}{
	CookieBanner: 1 * time.Second,
	CookieSettle: 300 * time.Millisecond,
	CloseButton:  600 * time.Millisecond,
	Overlay:      400 * time.Millisecond,
	EscapeSettle: 200 * time.Millisecond,
}

// ExcelStyle holds the workbook's cosmetic constants.
var ExcelStyle = struct {
	HeaderFill  string
	ZebraFill   string
	AbsentColor string
	FooterColor string
	FontName    string
	MaxColWidth float64
}{
	HeaderFill:  "1F4E78",
	ZebraFill:   "F5F5F5",
	AbsentColor: "A6A6A6",
	FooterColor: "808080",
	FontName:    "Calibri",
	MaxColWidth: 50,
}
