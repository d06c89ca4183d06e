package handler

// msgOnboarding walks a new customer through the queue process.  The copy
// is maintained with the shop owners; keep the wording in sync with the
// pinned version in the operator group.
const msgOnboarding = `♡ 𓈒 ᐟ สวัสดีค่า ยินดีต้อนรับสู่บริการกดบัตรยยมือทองนะคะ 🐰💗
ขอแจ้งขั้นตอนการรับคิวผ่าน LINE OA ให้ลูกค้าเข้าใจง่ายๆ ก่อนนะคะ ⤵

♡ ขั้นตอนการรับคิวกดบัตรผ่าน LINE OA

1) ลูกค้าส่งรายละเอียดงาน ✅
 └ ชื่องาน + โซน/ราคา + จำนวนบัตรที่ต้องการ

2) ร้านส่งฟอร์มข้อตกลงให้ลูกค้าอ่าน ✍️
 └ ลูกค้ากรอกยืนยันรับทราบเงื่อนไข

3) ร้านแจ้งยอดมัดจำ + ส่งฟอร์มมัดจำ 💸
 └ ลูกค้าโอนมัดจำ → ส่งสลิป → กรอกฟอร์มยืนยันคิว
🕘 หากลูกค้าไม่ดำเนินการโอนภายในเวลาที่กำหนด ระบบจะถือว่าสละสิทธิ์คิวอัตโนมัตินะคะ 💗

4) ร้านส่งฟอร์มรายละเอียดกดบัตรให้กรอก 🎟️
 └ เพื่อบันทึกข้อมูลงาน/ลำดับคิวในระบบ

5) หากฝากร้านชำระค่าบัตร 💳
 └ ใกล้ๆวันกด ร้านจะแจ้งยอดชำระค่าบัตร + ส่งฟอร์มให้กรอก

6) สถานะ: รอวันกดบัตร ⏳

7) วันกดบัตร 🎫
 └ ร้านแจ้งสแตนบาย + อัปเดตสถานการณ์การกด ในไลน์นี้

8) หากกดได้ ✅
 └ ร้านส่งรายละเอียดบัตร + สรุปยอดค่ากด
 └ ลูกค้าโอนค่ากดส่วนที่เหลือ + กรอกฟอร์มยืนยันการชำระเงิน

9) หากกดไม่ได้ ❌
 └ ร้านส่งฟอร์มคืนเงินให้กรอก
 └ โอนคืนตามเงื่อนไขร้านอย่างรวดเร็วค่ะ 🤍✨

📎 ระบบเก็บข้อมูล+สลิปทุกออเดอร์เพื่อความปลอดภัยค่ะ
ขอบคุณที่ไว้วางใจให้ยยมือทองกดบัตรให้นะคะ 🐰💗

พร้อมเริ่มแล้วลูกค้าส่งรายละเอียดงานได้เลยนะคะ 💬🌷`
