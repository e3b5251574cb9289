/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Palette: lime, cyan, yellow, rose, violet, orange.
var defaultSlides = SlideList{
	{
		ID:          1,
		Title:       "SOPAN & ETIKA",
		Subtitle:    "SELAMAT DATANG • MULAI...",
		Content:     "Panduan sederhana untuk menjadi pribadi berkualitas di era modern. Tetap santai, tapi penuh tata krama.",
		Type:        KindHero,
		AccentColor: "#bef264",
		Tags:        []string{"SIKAP DASAR", "PANDUAN ETIKA", "LEVEL UP"},
	},
	{
		ID:          2,
		Title:       "Fondasi Dasar",
		Subtitle:    "01 / MENGAPA PENTING?",
		Content:     "Sopan santun bukan sekadar formalitas, tapi mata uang sosial yang berlaku di mana saja. Skill tinggi tanpa etika tidak akan membawamu jauh. Orang akan mengingat bagaimana kamu memperlakukan mereka, bukan seberapa pintar dirimu.",
		Type:        KindSplit,
		AccentColor: "#22d3ee",
		ImageURL:    "https://images.unsplash.com/photo-1557804506-669a67965ba0?q=80&w=2000&auto=format&fit=crop",
	},
	{
		ID:          3,
		Title:       "Jejak Digital",
		Subtitle:    "02 / DUNIA MAYA",
		Content:     "Internet tidak pernah lupa. Apa yang kamu ketik mencerminkan karakter aslimu. Hindari berdebat kosong, hargai karya orang lain, dan jangan mengetik sesuatu yang tidak akan kamu ucapkan secara langsung di depan wajah seseorang.",
		Type:        KindImage,
		AccentColor: "#facc15",
		ImageURL:    "https://images.unsplash.com/photo-1611162617474-5b21e879e113?q=80&w=2000&auto=format&fit=crop",
	},
	{
		ID:          4,
		Title:       "Interaksi Nyata",
		Subtitle:    "03 / TATAP MUKA",
		Content:     "Dalam pertemuan langsung, bahasa tubuh berbicara lebih keras dari kata-kata. Tatap mata lawan bicara, berikan senyum tulus, dan simpan ponselmu. Menghargai kehadiran fisik seseorang adalah bentuk penghormatan tertinggi saat ini.",
		Type:        KindSplit,
		AccentColor: "#f43f5e",
		ImageURL:    "https://images.unsplash.com/photo-1529156069898-49953e39b3ac?q=80&w=2000&auto=format&fit=crop",
	},
	{
		ID:          5,
		Title:       "Ruang Publik",
		Subtitle:    "04 / ETIKA UMUM",
		Content:     "Dunia bukan milikmu sendiri. Jaga volume suara, antre dengan sabar, dan jangan tinggalkan sampah sembarangan. Kesadaran diri di tempat umum menunjukkan kelas yang sebenarnya.",
		Type:        KindSplit,
		AccentColor: "#c084fc",
		ImageURL:    "https://images.unsplash.com/photo-1496345875659-11f7dd282d1d?q=80&w=2000&auto=format&fit=crop",
	},
	{
		ID:          6,
		Title:       "Komunikasi",
		Subtitle:    "05 / SENI BICARA",
		Content:     "Nada suara menentukan pesan yang diterima. Mendengarkan adalah bagian terpenting dari komunikasi, bukan sekadar menunggu giliran bicara. Ucapkan 'tolong', 'maaf', dan 'terima kasih' dengan tulus.",
		Type:        KindSplit,
		AccentColor: "#fb923c",
		ImageURL:    "https://images.unsplash.com/photo-1521737604893-d14cc237f11d?q=80&w=2000&auto=format&fit=crop",
	},
	{
		ID:          7,
		Title:       "TERIMA KASIH",
		Subtitle:    "SESI BERAKHIR • TETAP KEREN",
		Content:     "Materi selesai, tapi praktik etika berjalan seumur hidup. Jadilah inspirasi positif bagi lingkunganmu.",
		Type:        KindFooter,
		AccentColor: "#bef264",
	},
}

// DefaultSlides returns a fresh copy of the compiled-in deck. Callers may
// modify the result freely.
func DefaultSlides() SlideList { return defaultSlides.Clone() }
