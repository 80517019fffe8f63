package i18n

var langFA = map[string]string{
	"WELCOME":            "خوش اومدی به CryptoLocker — مدیر پسورد تو در تلگرام.",
	"MENU_HINT":          "یکی از گزینه‌ها را انتخاب کن:",
	"ASK_ADD_NAME":       "یک نام کوتاه برای اکانت بفرست (مثال: Gmail، VPN کار).",
	"ASK_ADD_USERNAME":   "نام کاربری برای {name} را ارسال کن.",
	"ASK_ADD_PASSWORD":   "رمز عبور برای {name} را ارسال کن.",
	"ADDED_SUCCESS":      "ذخیره شد ✅ — اطلاعات {name} ثبت شد.",
	"ASK_SEARCH":         "اسم مورد نظر برای جستجو را بفرست.",
	"NO_MATCH":           "موردی با '{q}' پیدا نشد.",
	"NO_ACCOUNTS":        "هنوز هیچ اکانتی ذخیره نکرده‌ای.",
	"INVALID_NAME":       "نام باید بین ۱ تا ۶۴ کاراکتر باشد.",
	"INVALID_CREDENTIAL": "مقدار باید بین ۱ تا ۵۱۲ کاراکتر باشد.",
	"PROMPT_REMOVE":      "اکانتی که می‌خوای حذف کنی را انتخاب کن.",
	"PROMPT_EDIT":        "اکانتی که می‌خوای ویرایش کنی را انتخاب کن.",
	"PROMPT_SHOW":        "اکانتی که می‌خوای ببینی را انتخاب کن.",
	"SEARCH_RESULTS":     "یکی از نتایج را انتخاب کن:",
	"ASK_NEW_USERNAME":   "نام‌کاربری جدید برای {name} را بفرست.",
	"ASK_NEW_PASSWORD":   "رمز جدید برای {name} را بفرست.",
	"BTN_EDIT_USERNAME":  "تغییر نام‌کاربری",
	"BTN_EDIT_PASSWORD":  "تغییر رمز",
	"ASK_REMOVE_CONFIRM": "مطمئنی می‌خوای {name} را حذف کنی؟ این عمل قابل بازگشت نیست.",
	"REMOVED_SUCCESS":    "{name} حذف شد.",
	"EDIT_CHOOSE_FIELD":  "می‌خوای نام‌کاربری را تغییر بدی یا رمز را؟",
	"EDIT_SUCCESS":       "{field} برای {name} به‌روز شد.",
	"FIELD_USERNAME":     "نام‌کاربری",
	"FIELD_PASSWORD":     "رمز",
	"LANG_CHANGED":       "زبان به فارسی تغییر کرد.",
	"LANG_USAGE":         "Usage: /lang en|fa",
	"NOT_ADMIN":          "تو ادمین بات نیستی.",
	"ERR_GENERIC":        "مشکلی پیش اومد. دوباره تلاش کن.",
	"BTN_ADD":            "افزودن",
	"BTN_SEARCH":         "جستجو",
	"BTN_REMOVE":         "حذف",
	"BTN_EDIT":           "ویرایش",
	"BTN_SHOW":           "نمایش",
	"BTN_YES_DELETE":     "بله، حذف شود",
	"BTN_NO_CANCEL":      "خیر، انصراف",
	"BTN_CLOSE":          "بستن",
}
