package usecase

// Mijozga ko'rinadigan barcha matnlar vetnam tilida bitta joyda turadi
const (
	MenuCatalogLabel  = "📋 Danh sách sản phẩm"
	MenuWarrantyLabel = "🛡️ Chế độ bảo hành"
	MenuLeadtimeLabel = "⏳ Thời gian sản xuất"
	MenuContactLabel  = "📞 Liên hệ"

	WelcomeText     = "Chào mừng bạn đến ECCues. Gõ mã hoặc tên mẫu để xem giá (Thường/Cao cấp)."
	ShortPromptText = "Gõ mã hoặc tên mẫu để xem giá."

	WarrantyText = "🛡️ *Chế độ bảo hành*\n- Hàng cao cấp: cam kết chất lượng giống chính hãng >95%\n- Hàng trung bình: >90%\n- Zen: >90%\n- Sơn lại miễn phí 1 lần (thời gian không quá 1 năm)"

	LeadtimeText = "⏳ *Thời gian sản xuất*: thường 3–4 tháng (tuỳ mẫu)."

	ContactText = "📞 *Liên hệ chốt đơn*\nTelegram: @eccues\nFacebook: https://www.facebook.com/share/1CJbMHsZEM/?mibextid=wwXIfr"

	FallbackText = "Vui lòng gửi mã hoặc tên mẫu để báo giá Thường/Cao cấp."
	NoDataText   = "Danh mục chưa có dữ liệu."
	NoCodeLabel  = "(không mã)"
)
