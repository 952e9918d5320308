package render

import "strings"

// enginePrefix is the recording engine's reserved attribute namespace.
// Every attribute under this prefix is dropped during serialization unless
// it is one of the preserved markers below.
const enginePrefix = "__playwright_"

// Preserved attribute markers. These drive the restoration script and are
// the only members of the engine's namespace kept in the emitted HTML.
const (
	attrIframeSrc      = "__playwright_src__"
	attrScrollTop      = "__playwright_scroll_top_"
	attrScrollLeft     = "__playwright_scroll_left_"
	attrInputValue     = "__playwright_value_"
	attrChecked        = "__playwright_checked_"
	attrSelected       = "__playwright_selected_"
	attrPopoverOpen    = "__playwright_popover_open_"
	attrDialogOpen     = "__playwright_dialog_open_"
	attrShadowRoot     = "__playwright_shadow_root_"
	attrCustomElements = "__playwright_custom_elements_" // on <body>
	attrStyleSheet     = "__playwright_style_sheet_"     // on <template>
)

var preservedAttrs = map[string]bool{
	attrIframeSrc:      true,
	attrScrollTop:      true,
	attrScrollLeft:     true,
	attrInputValue:     true,
	attrChecked:        true,
	attrSelected:       true,
	attrPopoverOpen:    true,
	attrDialogOpen:     true,
	attrShadowRoot:     true,
	attrCustomElements: true,
	attrStyleSheet:     true,
}

// keepAttr reports whether attribute name survives serialization: anything
// outside the engine's namespace is kept as-is; inside it, only the
// preserved markers survive.
func keepAttr(name string) bool {
	if !strings.HasPrefix(name, enginePrefix) {
		return true
	}
	return preservedAttrs[name]
}

// selfClosing is the void-element tag set; these never emit a closing tag.
var selfClosing = map[string]bool{
	"AREA": true, "BASE": true, "BR": true, "COL": true, "COMMAND": true,
	"EMBED": true, "HR": true, "IMG": true, "INPUT": true, "KEYGEN": true,
	"LINK": true, "MENUITEM": true, "META": true, "PARAM": true,
	"SOURCE": true, "TRACK": true, "WBR": true,
}

func isSelfClosing(tagUpper string) bool {
	return selfClosing[tagUpper]
}
