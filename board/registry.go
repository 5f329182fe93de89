package board

// extraPara0100 and friends are the two-byte extra-para markers from
// spec.md §6's requirement table, transcribed from the original
// implementation's per-board branches (tplink-safeloader.c).
var (
	extraPara0100 = []byte{0x01, 0x00}
	extraPara0001 = []byte{0x00, 0x01}
	extraPara0101 = []byte{0x01, 0x01}
)

// Registry is the static, ordered board profile table. Lookup is
// first-match, case-insensitive, via Find.
//
// Each entry's flash layout, vendor banner, support-list text and
// soft-version variant are transcribed verbatim from
// _examples/original_source/src/tplink-safeloader.c so that the fixtures in
// spec.md §8 (S1-S6) are grounded in the real vendor data rather than
// invented.
var Registry = []BoardProfile{
	{
		ID:          "CPE510",
		Vendor:      "CPE510(TP-LINK|UN|N300-5):1.0\r\n",
		SupportList: "SupportList:\r\n" +
			"CPE510(TP-LINK|UN|N300-5):1.0\r\n" +
			"CPE510(TP-LINK|UN|N300-5):1.1\r\n" +
			"CPE510(TP-LINK|UN|N300-5):1.1\r\n" +
			"CPE510(TP-LINK|US|N300-5):1.1\r\n" +
			"CPE510(TP-LINK|CA|N300-5):1.1\r\n" +
			"CPE510(TP-LINK|EU|N300-5):1.1\r\n" +
			"CPE520(TP-LINK|UN|N300-5):1.1\r\n" +
			"CPE520(TP-LINK|US|N300-5):1.1\r\n" +
			"CPE520(TP-LINK|EU|N300-5):1.1\r\n",
		Padding: Pad(0xff),
		SoftVer: DefaultSoftVer,
		Flash: []FlashPartition{
			{"fs-uboot", 0x00000, 0x20000},
			{"partition-table", 0x20000, 0x02000},
			{"default-mac", 0x30000, 0x00020},
			{"product-info", 0x31100, 0x00100},
			{"signature", 0x32000, 0x00400},
			{"firmware", 0x40000, 0x770000},
			{"soft-version", 0x7b0000, 0x00100},
			{"support-list", 0x7b1000, 0x00400},
			{"user-config", 0x7c0000, 0x10000},
			{"default-config", 0x7d0000, 0x10000},
			{"log", 0x7e0000, 0x10000},
			{"radio", 0x7f0000, 0x10000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "support-list",
	},
	{
		ID:          "CPE510V2",
		Vendor:      "CPE510(TP-LINK|UN|N300-5):2.0\r\n",
		SupportList: "SupportList:\r\n" +
			"CPE510(TP-LINK|EU|N300-5|00000000):2.0\r\n" +
			"CPE510(TP-LINK|EU|N300-5|45550000):2.0\r\n" +
			"CPE510(TP-LINK|EU|N300-5|55530000):2.0\r\n" +
			"CPE510(TP-LINK|UN|N300-5|00000000):2.0\r\n" +
			"CPE510(TP-LINK|UN|N300-5|45550000):2.0\r\n" +
			"CPE510(TP-LINK|UN|N300-5|55530000):2.0\r\n" +
			"CPE510(TP-LINK|US|N300-5|00000000):2.0\r\n" +
			"CPE510(TP-LINK|US|N300-5|45550000):2.0\r\n" +
			"CPE510(TP-LINK|US|N300-5|55530000):2.0\r\n" +
			"CPE510(TP-LINK|UN|N300-5):2.0\r\n" +
			"CPE510(TP-LINK|EU|N300-5):2.0\r\n" +
			"CPE510(TP-LINK|US|N300-5):2.0\r\n",
		Padding: Pad(0xff),
		SoftVer: DefaultSoftVer,
		Flash: []FlashPartition{
			{"fs-uboot", 0x00000, 0x20000},
			{"partition-table", 0x20000, 0x02000},
			{"default-mac", 0x30000, 0x00020},
			{"product-info", 0x31100, 0x00100},
			{"signature", 0x32000, 0x00400},
			{"firmware", 0x40000, 0x770000},
			{"soft-version", 0x7b0000, 0x00100},
			{"support-list", 0x7b1000, 0x00400},
			{"user-config", 0x7c0000, 0x10000},
			{"default-config", 0x7d0000, 0x10000},
			{"log", 0x7e0000, 0x10000},
			{"radio", 0x7f0000, 0x10000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "support-list",
	},
	{
		ID:          "CPE510V3",
		Vendor:      "CPE510(TP-LINK|UN|N300-5):3.0\r\n",
		SupportList: "SupportList:\r\n" +
			"CPE510(TP-LINK|EU|N300-5|00000000):3.0\r\n" +
			"CPE510(TP-LINK|EU|N300-5|45550000):3.0\r\n" +
			"CPE510(TP-LINK|EU|N300-5|55530000):3.0\r\n" +
			"CPE510(TP-LINK|UN|N300-5|00000000):3.0\r\n" +
			"CPE510(TP-LINK|UN|N300-5|45550000):3.0\r\n" +
			"CPE510(TP-LINK|UN|N300-5|55530000):3.0\r\n" +
			"CPE510(TP-LINK|US|N300-5|00000000):3.0\r\n" +
			"CPE510(TP-LINK|US|N300-5|45550000):3.0\r\n" +
			"CPE510(TP-LINK|US|N300-5|55530000):3.0\r\n" +
			"CPE510(TP-LINK|UN|N300-5):3.0\r\n" +
			"CPE510(TP-LINK|EU|N300-5):3.0\r\n" +
			"CPE510(TP-LINK|US|N300-5):3.0\r\n" +
			"CPE510(TP-LINK|UN|N300-5|00000000):3.20\r\n" +
			"CPE510(TP-LINK|US|N300-5|55530000):3.20\r\n" +
			"CPE510(TP-LINK|EU|N300-5|45550000):3.20\r\n",
		Padding: Pad(0xff),
		SoftVer: DefaultSoftVer,
		Flash: []FlashPartition{
			{"fs-uboot", 0x00000, 0x20000},
			{"partition-table", 0x20000, 0x02000},
			{"default-mac", 0x30000, 0x00020},
			{"product-info", 0x31100, 0x00100},
			{"signature", 0x32000, 0x00400},
			{"firmware", 0x40000, 0x770000},
			{"soft-version", 0x7b0000, 0x00100},
			{"support-list", 0x7b1000, 0x00400},
			{"user-config", 0x7c0000, 0x10000},
			{"default-config", 0x7d0000, 0x10000},
			{"log", 0x7e0000, 0x10000},
			{"radio", 0x7f0000, 0x10000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "support-list",
	},
	{
		ID:          "ARCHER-A7-V5",
		SupportList: "SupportList:\n" +
			"{product_name:Archer A7,product_ver:5.0.0,special_id:45550000}\n" +
			"{product_name:Archer A7,product_ver:5.0.0,special_id:55530000}\n" +
			"{product_name:Archer A7,product_ver:5.0.0,special_id:43410000}\n" +
			"{product_name:Archer A7,product_ver:5.0.0,special_id:4A500000}\n" +
			"{product_name:Archer A7,product_ver:5.0.0,special_id:54570000}\n" +
			"{product_name:Archer A7,product_ver:5.0.0,special_id:52550000}\n",
		Padding:     NoPadding,
		SoftVer:     TextSoftVer("soft_ver:7.0.0\n"),
		CompatLevel: 0,
		Flash: []FlashPartition{
			{"factory-boot", 0x00000, 0x20000},
			{"fs-uboot", 0x20000, 0x20000},
			{"firmware", 0x40000, 0xec0000},
			{"default-mac", 0xf40000, 0x00200},
			{"pin", 0xf40200, 0x00200},
			{"device-id", 0xf40400, 0x00100},
			{"product-info", 0xf40500, 0x0fb00},
			{"soft-version", 0xf50000, 0x00100},
			{"extra-para", 0xf51000, 0x01000},
			{"support-list", 0xf52000, 0x0a000},
			{"profile", 0xf5c000, 0x04000},
			{"default-config", 0xf60000, 0x10000},
			{"user-config", 0xf70000, 0x40000},
			{"certificate", 0xfb0000, 0x10000},
			{"partition-table", 0xfc0000, 0x10000},
			{"log", 0xfd0000, 0x20000},
			{"radio", 0xff0000, 0x10000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "file-system",
		ExtraPara:                extraPara0100,
	},
	{
		ID:          "ARCHER-C7-V4",
		SupportList: "SupportList:\n" +
			"{product_name:Archer C7,product_ver:4.0.0,special_id:00000000}\n" +
			"{product_name:Archer C7,product_ver:4.0.0,special_id:41550000}\n" +
			"{product_name:Archer C7,product_ver:4.0.0,special_id:45550000}\n" +
			"{product_name:Archer C7,product_ver:4.0.0,special_id:4B520000}\n" +
			"{product_name:Archer C7,product_ver:4.0.0,special_id:42520000}\n" +
			"{product_name:Archer C7,product_ver:4.0.0,special_id:4A500000}\n" +
			"{product_name:Archer C7,product_ver:4.0.0,special_id:52550000}\n" +
			"{product_name:Archer C7,product_ver:4.0.0,special_id:54570000}\n" +
			"{product_name:Archer C7,product_ver:4.0.0,special_id:55530000}\n" +
			"{product_name:Archer C7,product_ver:4.0.0,special_id:43410000}\n",
		Padding: NoPadding,
		SoftVer: TextSoftVer("soft_ver:1.0.0\n"),
		Flash: []FlashPartition{
			{"factory-boot", 0x00000, 0x20000},
			{"fs-uboot", 0x20000, 0x20000},
			{"firmware", 0x40000, 0xec0000},
			{"default-mac", 0xf00000, 0x00200},
			{"pin", 0xf00200, 0x00200},
			{"device-id", 0xf00400, 0x00100},
			{"product-info", 0xf00500, 0x0fb00},
			{"soft-version", 0xf10000, 0x00100},
			{"extra-para", 0xf11000, 0x01000},
			{"support-list", 0xf12000, 0x0a000},
			{"profile", 0xf1c000, 0x04000},
			{"default-config", 0xf20000, 0x10000},
			{"user-config", 0xf30000, 0x40000},
			{"qos-db", 0xf70000, 0x40000},
			{"certificate", 0xfb0000, 0x10000},
			{"partition-table", 0xfc0000, 0x10000},
			{"log", 0xfd0000, 0x20000},
			{"radio", 0xff0000, 0x10000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "file-system",
		ExtraPara:                extraPara0100,
	},
	{
		ID:          "ARCHER-C7-V5",
		SupportList: "SupportList:\n" +
			"{product_name:Archer C7,product_ver:5.0.0,special_id:00000000}\n" +
			"{product_name:Archer C7,product_ver:5.0.0,special_id:45550000}\n" +
			"{product_name:Archer C7,product_ver:5.0.0,special_id:55530000}\n" +
			"{product_name:Archer C7,product_ver:5.0.0,special_id:43410000}\n" +
			"{product_name:Archer C7,product_ver:5.0.0,special_id:4A500000}\n" +
			"{product_name:Archer C7,product_ver:5.0.0,special_id:54570000}\n" +
			"{product_name:Archer C7,product_ver:5.0.0,special_id:52550000}\n" +
			"{product_name:Archer C7,product_ver:5.0.0,special_id:4B520000}\n",
		Padding: NoPadding,
		SoftVer: TextSoftVer("soft_ver:7.0.0\n"),
		Flash: []FlashPartition{
			{"factory-boot", 0x00000, 0x20000},
			{"fs-uboot", 0x20000, 0x20000},
			{"partition-table", 0x40000, 0x10000},
			{"radio", 0x50000, 0x10000},
			{"default-mac", 0x60000, 0x00200},
			{"pin", 0x60200, 0x00200},
			{"device-id", 0x60400, 0x00100},
			{"product-info", 0x60500, 0x0fb00},
			{"soft-version", 0x70000, 0x01000},
			{"extra-para", 0x71000, 0x01000},
			{"support-list", 0x72000, 0x0a000},
			{"profile", 0x7c000, 0x04000},
			{"user-config", 0x80000, 0x40000},
			{"firmware", 0xc0000, 0xf00000},
			{"log", 0xfc0000, 0x20000},
			{"certificate", 0xfe0000, 0x10000},
			{"default-config", 0xff0000, 0x10000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "file-system",
		ExtraPara:                extraPara0100,
	},
	{
		ID:          "ARCHER-C6-V2",
		SupportList: "SupportList:\r\n" +
			"{product_name:Archer A6,product_ver:2.0.0,special_id:45550000}\r\n" +
			"{product_name:Archer A6,product_ver:2.0.0,special_id:52550000}\r\n" +
			"{product_name:Archer C6,product_ver:2.0.0,special_id:45550000}\r\n" +
			"{product_name:Archer C6,product_ver:2.0.0,special_id:52550000}\r\n" +
			"{product_name:Archer C6,product_ver:2.0.0,special_id:4A500000}\r\n",
		Padding: NoPadding,
		SoftVer: TextSoftVer("soft_ver:1.9.1\n"),
		Flash: []FlashPartition{
			{"fs-uboot", 0x00000, 0x20000},
			{"default-mac", 0x20000, 0x00200},
			{"pin", 0x20200, 0x00100},
			{"product-info", 0x20300, 0x00200},
			{"device-id", 0x20500, 0x0fb00},
			{"firmware", 0x30000, 0x7a9400},
			{"soft-version", 0x7d9400, 0x00100},
			{"extra-para", 0x7d9500, 0x00100},
			{"support-list", 0x7d9600, 0x00200},
			{"profile", 0x7d9800, 0x03000},
			{"default-config", 0x7dc800, 0x03000},
			{"partition-table", 0x7df800, 0x00800},
			{"user-config", 0x7e0000, 0x0c000},
			{"certificate", 0x7ec000, 0x04000},
			{"radio", 0x7f0000, 0x10000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "file-system",
		ExtraPara:                extraPara0001,
	},
	{
		ID:          "ARCHER-C6-V2-US",
		SupportList: "SupportList:\n" +
			"{product_name:Archer A6,product_ver:2.0.0,special_id:55530000}\n" +
			"{product_name:Archer A6,product_ver:2.0.0,special_id:54570000}\n" +
			"{product_name:Archer C6,product_ver:2.0.0,special_id:55530000}\n",
		Padding: NoPadding,
		SoftVer: TextSoftVer("soft_ver:1.9.1\n"),
		Flash: []FlashPartition{
			{"factory-boot", 0x00000, 0x20000},
			{"default-mac", 0x20000, 0x00200},
			{"pin", 0x20200, 0x00100},
			{"product-info", 0x20300, 0x00200},
			{"device-id", 0x20500, 0x0fb00},
			{"fs-uboot", 0x30000, 0x20000},
			{"firmware", 0x50000, 0xf89400},
			{"soft-version", 0xfd9400, 0x00100},
			{"extra-para", 0xfd9500, 0x00100},
			{"support-list", 0xfd9600, 0x00200},
			{"profile", 0xfd9800, 0x03000},
			{"default-config", 0xfdc800, 0x03000},
			{"partition-table", 0xfdf800, 0x00800},
			{"user-config", 0xfe0000, 0x0c000},
			{"certificate", 0xfec000, 0x04000},
			{"radio", 0xff0000, 0x10000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "file-system",
		ExtraPara:                extraPara0101,
	},
	{
		ID:          "EAP225-OUTDOOR-V1",
		SupportList: "SupportList:\r\n" +
			"EAP225-Outdoor(TP-Link|UN|AC1200-D):1.0\r\n",
		Padding:     NoPadding,
		SoftVer:     DefaultSoftVer,
		CompatLevel: 1,
		Flash: []FlashPartition{
			{"fs-uboot", 0x00000, 0x20000},
			{"partition-table", 0x20000, 0x02000},
			{"default-mac", 0x30000, 0x01000},
			{"support-list", 0x31000, 0x00100},
			{"product-info", 0x31100, 0x00400},
			{"soft-version", 0x32000, 0x00100},
			{"firmware", 0x40000, 0xd80000},
			{"user-config", 0xdc0000, 0x30000},
			{"mutil-log", 0xf30000, 0x80000},
			{"oops", 0xfb0000, 0x40000},
			{"radio", 0xff0000, 0x10000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "file-system",
	},
	{
		ID:          "EAP245-V3",
		SupportList: "SupportList:\r\n" +
			"EAP245(TP-Link|UN|AC1750-D):3.0\r\n" +
			"EAP265 HD(TP-Link|UN|AC1750-D):1.0",
		Padding:     NoPadding,
		SoftVer:     DefaultSoftVer,
		CompatLevel: 1,
		Flash: []FlashPartition{
			{"factroy-boot", 0x00000, 0x40000},
			{"fs-uboot", 0x40000, 0x40000},
			{"partition-table", 0x80000, 0x10000},
			{"default-mac", 0x90000, 0x01000},
			{"support-list", 0x91000, 0x00100},
			{"product-info", 0x91100, 0x00400},
			{"soft-version", 0x92000, 0x00100},
			{"radio", 0xa0000, 0x10000},
			{"extra-para", 0xb0000, 0x10000},
			{"firmware", 0xc0000, 0xe40000},
			{"config", 0xf00000, 0x30000},
			{"mutil-log", 0xf30000, 0x80000},
			{"oops", 0xfb0000, 0x40000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "file-system",
		ExtraPara:                extraPara0101,
	},
	{
		ID:          "TL-WA1201-V2",
		SupportList: "SupportList:\n" +
			"{product_name:TL-WA1201,product_ver:2.0.0,special_id:45550000}\n" +
			"{product_name:TL-WA1201,product_ver:2.0.0,special_id:55530000}\n",
		Padding: NoPadding,
		SoftVer: TextSoftVer("soft_ver:1.0.1 Build 20200709 rel.66244\n"),
		Flash: []FlashPartition{
			{"fs-uboot", 0x00000, 0x20000},
			{"default-mac", 0x20000, 0x00200},
			{"pin", 0x20200, 0x00100},
			{"product-info", 0x20300, 0x00200},
			{"device-id", 0x20500, 0x0fb00},
			{"firmware", 0x30000, 0xce0000},
			{"portal-logo", 0xd10000, 0x20000},
			{"portal-back", 0xd30000, 0x200000},
			{"soft-version", 0xf30000, 0x00200},
			{"extra-para", 0xf30200, 0x00200},
			{"support-list", 0xf30400, 0x00200},
			{"profile", 0xf30600, 0x0fa00},
			{"apdef-config", 0xf40000, 0x10000},
			{"ap-config", 0xf50000, 0x10000},
			{"redef-config", 0xf60000, 0x10000},
			{"re-config", 0xf70000, 0x10000},
			{"multidef-config", 0xf80000, 0x10000},
			{"multi-config", 0xf90000, 0x10000},
			{"clientdef-config", 0xfa0000, 0x10000},
			{"client-config", 0xfb0000, 0x10000},
			{"partition-table", 0xfc0000, 0x10000},
			{"user-config", 0xfd0000, 0x10000},
			{"certificate", 0xfe0000, 0x10000},
			{"radio", 0xff0000, 0x10000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "file-system",
		ExtraPara:                extraPara0001,
	},
	{
		ID:          "ARCHER-AX23-V1",
		SupportList: "SupportList:\n" +
			"{product_name:Archer AX23,product_ver:1.0,special_id:45550000}\n" +
			"{product_name:Archer AX23,product_ver:1.0,special_id:4A500000}\n" +
			"{product_name:Archer AX23,product_ver:1.0,special_id:4B520000}\n" +
			"{product_name:Archer AX23,product_ver:1.0,special_id:52550000}\n" +
			"{product_name:Archer AX23,product_ver:1.0.0,special_id:43410000}\n" +
			"{product_name:Archer AX23,product_ver:1.0.0,special_id:54570000}\n" +
			"{product_name:Archer AX23,product_ver:1.0.0,special_id:55530000}\n" +
			"{product_name:Archer AX23,product_ver:1.20,special_id:45550000}\n" +
			"{product_name:Archer AX23,product_ver:1.20,special_id:4A500000}\n" +
			"{product_name:Archer AX23,product_ver:1.20,special_id:52550000}\n" +
			"{product_name:Archer AX23,product_ver:1.20,special_id:55530000}\n" +
			"{product_name:Archer AX1800,product_ver:1.20,special_id:45550000}\n" +
			"{product_name:Archer AX1800,product_ver:1.20,special_id:52550000}\n",
		Padding: NoPadding,
		SoftVer: TextSoftVer("soft_ver:3.0.3\n"),
		Flash: []FlashPartition{
			{"fs-uboot", 0x00000, 0x40000},
			{"firmware", 0x40000, 0xf60000},
			{"default-mac", 0xfa0000, 0x00200},
			{"pin", 0xfa0200, 0x00100},
			{"device-id", 0xfa0300, 0x00100},
			{"product-info", 0xfa0400, 0x0fc00},
			{"default-config", 0xfb0000, 0x08000},
			{"ap-def-config", 0xfb8000, 0x08000},
			{"user-config", 0xfc0000, 0x0a000},
			{"ag-config", 0xfca000, 0x04000},
			{"certificate", 0xfce000, 0x02000},
			{"ap-config", 0xfd0000, 0x06000},
			{"router-config", 0xfd6000, 0x06000},
			{"favicon", 0xfdc000, 0x02000},
			{"logo", 0xfde000, 0x02000},
			{"partition-table", 0xfe0000, 0x00800},
			{"soft-version", 0xfe0800, 0x00100},
			{"support-list", 0xfe0900, 0x00400},
			{"profile", 0xfe0d00, 0x03000},
			{"extra-para", 0xfe3d00, 0x00100},
			{"radio", 0xff0000, 0x10000},
		},
		FirstSysupgradePartition: "os-image",
		LastSysupgradePartition:  "file-system",
		// Resolved Open Question (SPEC_FULL.md §9): the marker is the two
		// bytes below, not the 0x100-byte "extra-para" flash region (that
		// region is on-device storage geometry, unrelated to the marker's
		// length).
		ExtraPara: extraPara0100,
	},
}
