package templatex

const (
	NamePaymentReminder     = "payment_reminder"
	NamePaymentConfirmation = "payment_confirmation"
	NameAttendanceAlert     = "attendance_alert"
	NameGradeReport         = "grade_report"
	NameAnnouncement        = "announcement"
	NameDonationReceipt     = "donation_receipt"
	NamePPDBRegistration    = "ppdb_registration"
	NameVerificationCode    = "verification_code"
)

const automatedFooter = "Pesan otomatis, mohon tidak membalas pesan ini."

var registry = map[string]Template{}

func register(t Template) {
	if t.Language == "" {
		t.Language = DefaultLanguage
	}
	registry[t.Name] = t
}

func body(text string, example ...string) Component {
	return Component{Type: "BODY", Text: text, Example: &Example{BodyText: [][]string{example}}}
}

func header(text string) Component {
	return Component{Type: "HEADER", Format: "TEXT", Text: text}
}

func footer(text string) Component {
	return Component{Type: "FOOTER", Text: text}
}

func init() {
	register(Template{
		Name:     NamePaymentReminder,
		Category: CategoryUtility,
		Params:   []string{"parentName", "billType", "studentName", "amount", "dueDate", "paymentUrl"},
		Components: []Component{
			header("Pengingat Pembayaran"),
			body("Assalamu'alaikum Bapak/Ibu {{1}},\n\n"+
				"Kami mengingatkan tagihan {{2}} untuk ananda {{3}} sebesar {{4}} "+
				"dengan jatuh tempo {{5}}.\n\n"+
				"Pembayaran dapat dilakukan melalui: {{6}}\n\n"+
				"Jazakumullahu khairan.",
				"Budi", "SPP Juli", "Ahmad", "Rp 750.000", "10 Juli 2024", "https://pay.example.sch.id/inv/123"),
			footer(automatedFooter),
			{Type: "BUTTONS", Buttons: []Button{{Type: "QUICK_REPLY", Text: "Sudah Bayar"}}},
		},
	})

	register(Template{
		Name:     NamePaymentConfirmation,
		Category: CategoryUtility,
		Params:   []string{"parentName", "studentName", "billType", "amount", "paidAt", "receiptNumber"},
		Components: []Component{
			header("Pembayaran Diterima"),
			body("Assalamu'alaikum Bapak/Ibu {{1}},\n\n"+
				"Alhamdulillah, pembayaran untuk ananda {{2}} telah kami terima.\n\n"+
				"Jenis: {{3}}\nJumlah: {{4}}\nTanggal: {{5}}\nNo. Kwitansi: {{6}}\n\n"+
				"Jazakumullahu khairan.",
				"Budi", "Ahmad", "SPP Juli", "Rp 750.000", "5 Juli 2024", "KW-2024-0001"),
			footer(automatedFooter),
		},
	})

	register(Template{
		Name:     NameAttendanceAlert,
		Category: CategoryUtility,
		Params:   []string{"parentName", "studentName", "date", "status", "className"},
		Components: []Component{
			header("Informasi Kehadiran"),
			body("Assalamu'alaikum Bapak/Ibu {{1}},\n\n"+
				"Ananda {{2}} tercatat {{4}} pada {{3}} di kelas {{5}}.\n\n"+
				"Mohon hubungi wali kelas bila ada keterangan.",
				"Budi", "Ahmad", "8 Juli 2024", "tidak hadir", "7A"),
			footer(automatedFooter),
		},
	})

	register(Template{
		Name:     NameGradeReport,
		Category: CategoryUtility,
		Params:   []string{"parentName", "studentName", "semester", "average", "reportUrl"},
		Components: []Component{
			header("Laporan Nilai"),
			body("Assalamu'alaikum Bapak/Ibu {{1}},\n\n"+
				"Laporan nilai ananda {{2}} untuk semester {{3}} telah terbit "+
				"dengan rata-rata {{4}}.\n\nRapor lengkap: {{5}}",
				"Budi", "Ahmad", "Ganjil 2024/2025", "87,5", "https://rapor.example.sch.id/r/123"),
			footer(automatedFooter),
		},
	})

	register(Template{
		Name:     NameAnnouncement,
		Category: CategoryMarketing,
		Params:   []string{"title", "message"},
		Components: []Component{
			header("Pengumuman"),
			body("*{{1}}*\n\n{{2}}", "Libur Idul Adha", "Kegiatan belajar diliburkan tanggal 17-19 Juni."),
			footer(automatedFooter),
		},
	})

	register(Template{
		Name:     NameDonationReceipt,
		Category: CategoryUtility,
		Params:   []string{"donorName", "campaignName", "amount", "date", "receiptNumber"},
		Components: []Component{
			header("Tanda Terima Donasi"),
			body("Assalamu'alaikum {{1}},\n\n"+
				"Jazakumullahu khairan atas donasi Anda untuk {{2}} sebesar {{3}} "+
				"pada {{4}}.\n\nNo. Kwitansi: {{5}}\n\n"+
				"Semoga Allah membalas dengan kebaikan yang berlipat.",
				"Hamba Allah", "Pembangunan Asrama", "Rp 1.000.000", "1 Juli 2024", "DN-2024-0042"),
			footer(automatedFooter),
		},
	})

	register(Template{
		Name:     NamePPDBRegistration,
		Category: CategoryUtility,
		Params:   []string{"applicantName", "registrationNumber", "program", "nextStep"},
		Components: []Component{
			header("Pendaftaran Santri Baru"),
			body("Assalamu'alaikum {{1}},\n\n"+
				"Pendaftaran Anda telah kami terima.\n\n"+
				"No. Pendaftaran: {{2}}\nProgram: {{3}}\n\n"+
				"Langkah selanjutnya: {{4}}",
				"Ahmad", "PPDB-2024-0107", "Tahfidz", "Tes seleksi 20 Juli 2024"),
			footer(automatedFooter),
		},
	})

	register(Template{
		Name:     NameVerificationCode,
		Category: CategoryAuthentication,
		Params:   []string{"code"},
		Components: []Component{
			body("*{{1}}* adalah kode verifikasi Anda. Demi keamanan, jangan bagikan kode ini.", "482913"),
			{Type: "BUTTONS", Buttons: []Button{{Type: "OTP", OTPType: "COPY_CODE", Text: "Salin Kode"}}},
		},
	})
}
