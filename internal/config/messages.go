package config

// User-facing messages returned by admin actions. The site is Indonesian.
const (
	MsgSaved   = "Data Disimpan"
	MsgUpdated = "Data diperbarui"
	MsgDeleted = "Data dihapus"

	MsgSaveFailed   = "Gagal menyimpan"
	MsgUpdateFailed = "Gagal memperbarui data"
	MsgDeleteFailed = "Gagal menghapus data"

	MsgBlogNotFound      = "Artikel tidak ditemukan"
	MsgPortfolioNotFound = "Portofolio tidak ditemukan"
	MsgProductNotFound   = "Produk tidak ditemukan"

	MsgTitleRequired   = "Judul wajib diisi"
	MsgNameRequired    = "Nama paket wajib diisi"
	MsgInvalidCategory = "Kategori tidak valid"
	MsgInvalidType     = "Tipe data tidak valid"

	MsgLoginFailed = "Login Gagal - Username atau password salah"
)
