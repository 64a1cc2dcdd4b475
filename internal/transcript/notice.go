package transcript

import "fmt"

// DefaultProductName names this system in the disabled-notice suffix.
const DefaultProductName = "SchoolPower"

// disabledSuffix is appended to a school's disabled message so readers know
// the text comes from the school. %[1]s is the product name.
const disabledSuffix = "\n\n(以上消息由学校提供，与 %[1]s 无关。若有疑问，请联系学校。" +
	"\nThe above message is provided by school and is not related with %[1]s." +
	"Please contact your school directly for any questions.)"

// FormatDisabledMessage appends the bilingual attribution suffix to a school's
// disabled message. An empty message stays empty.
func FormatDisabledMessage(message, product string) string {
	if message == "" {
		return ""
	}
	if product == "" {
		product = DefaultProductName
	}
	return message + fmt.Sprintf(disabledSuffix, product)
}
