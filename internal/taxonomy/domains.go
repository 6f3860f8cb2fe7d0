package taxonomy

// required lists the domains every respondent is steered through before
// specialization. Agro, security and logistics are explored only on demand.
var required = []string{
	"tecnologia", "salud", "educacion", "arte", "negocios",
	"ciencias", "ingenieria", "derecho", "comunicacion", "ciencias_sociales",
	"deporte", "medio_ambiente", "gastronomia", "musica", "servicio_social",
}

var domains = []Domain{
	{
		Key:   "tecnologia",
		Label: "Tecnología",
		Keywords: []string{
			"programar", "programación", "software", "código", "algoritmo", "lógica",
			"informática", "computadora", "videojuego", "robótica", "datos",
			"ciberseguridad", "electrónica", "inteligencia artificial", "aplicaciones",
		},
		SubAreas: []SubArea{
			{
				Name:     "Desarrollo de software",
				Keywords: []string{"programar", "software", "aplicaciones", "código", "web", "videojuego"},
				Roles: []Role{
					{Name: "Desarrollador web", Keywords: []string{"web", "página", "frontend", "diseño de interfaces"}},
					{Name: "Desarrollador de videojuegos", Keywords: []string{"videojuego", "juego", "animación"}},
					{Name: "Ingeniero backend", Keywords: []string{"servidor", "backend", "bases de datos", "apis"}},
				},
			},
			{
				Name:     "Datos e inteligencia artificial",
				Keywords: []string{"datos", "inteligencia artificial", "estadística", "predecir", "patrones"},
				Roles: []Role{
					{Name: "Científico de datos", Keywords: []string{"estadística", "predecir", "modelos"}},
					{Name: "Analista de datos", Keywords: []string{"reportes", "gráficos", "tablas", "excel"}},
				},
			},
			{
				Name:     "Ciberseguridad",
				Keywords: []string{"ciberseguridad", "hackear", "seguridad informática", "proteger sistemas"},
				Roles: []Role{
					{Name: "Analista de ciberseguridad", Keywords: []string{"ataques", "vulnerabilidades", "proteger"}},
					{Name: "Hacker ético", Keywords: []string{"hackear", "pruebas de penetración"}},
				},
			},
		},
		Sector:         "Tecnologías de la información",
		EducationLevel: "Universitario",
		Careers:        []string{"Ingeniería en Sistemas Computacionales", "Ciencia de Datos", "Desarrollo de Software"},
		Skills:         []string{"Pensamiento lógico", "Programación", "Resolución de problemas", "Trabajo en equipo"},
		StudyPaths:     []string{"Licenciatura en Informática", "Técnico en Programación", "Bootcamp de desarrollo web"},
	},
	{
		Key:   "salud",
		Label: "Salud",
		Keywords: []string{
			"salud", "médico", "medicina", "hospital", "enfermería", "pacientes",
			"cuidar personas", "cuerpo humano", "nutrición", "farmacia", "terapia",
			"odontología", "primeros auxilios", "enfermedades",
		},
		SubAreas: []SubArea{
			{
				Name:     "Atención clínica",
				Keywords: []string{"pacientes", "hospital", "médico", "enfermería", "diagnóstico"},
				Roles: []Role{
					{Name: "Médico general", Keywords: []string{"diagnóstico", "consulta", "recetar"}},
					{Name: "Enfermero", Keywords: []string{"enfermería", "cuidar", "turnos"}},
				},
			},
			{
				Name:     "Salud y bienestar",
				Keywords: []string{"nutrición", "terapia", "rehabilitación", "bienestar"},
				Roles: []Role{
					{Name: "Nutriólogo", Keywords: []string{"nutrición", "dieta", "alimentación"}},
					{Name: "Fisioterapeuta", Keywords: []string{"rehabilitación", "lesiones", "terapia física"}},
				},
			},
		},
		Sector:         "Salud",
		EducationLevel: "Universitario",
		Careers:        []string{"Medicina", "Enfermería", "Nutrición"},
		Skills:         []string{"Empatía", "Atención al detalle", "Trabajo bajo presión", "Comunicación con pacientes"},
		StudyPaths:     []string{"Licenciatura en Medicina", "Licenciatura en Enfermería", "Técnico en Atención Prehospitalaria"},
	},
	{
		Key:   "educacion",
		Label: "Educación",
		Keywords: []string{
			"enseñar", "educación", "docente", "profesor", "maestro", "escuela",
			"alumnos", "explicar", "pedagogía", "tutorías", "aprendizaje",
		},
		SubAreas: []SubArea{
			{
				Name:     "Docencia",
				Keywords: []string{"enseñar", "profesor", "maestro", "clases", "alumnos"},
				Roles: []Role{
					{Name: "Docente de primaria", Keywords: []string{"niños", "primaria"}},
					{Name: "Profesor de secundaria", Keywords: []string{"adolescentes", "secundaria", "preparatoria"}},
				},
			},
			{
				Name:     "Orientación educativa",
				Keywords: []string{"orientar", "tutorías", "pedagogía", "aprendizaje"},
				Roles: []Role{
					{Name: "Orientador educativo", Keywords: []string{"orientar", "acompañar"}},
					{Name: "Diseñador instruccional", Keywords: []string{"cursos", "materiales", "en línea"}},
				},
			},
		},
		Sector:         "Educación",
		EducationLevel: "Universitario",
		Careers:        []string{"Licenciatura en Educación", "Pedagogía", "Psicopedagogía"},
		Skills:         []string{"Comunicación", "Paciencia", "Planificación", "Creatividad"},
		StudyPaths:     []string{"Licenciatura en Pedagogía", "Escuela Normal", "Diplomado en Docencia"},
	},
	{
		Key:   "arte",
		Label: "Arte y Diseño",
		Keywords: []string{
			"dibujar", "dibujo", "pintura", "diseño", "ilustración", "fotografía",
			"escultura", "creatividad", "colores", "vestuario", "artístico", "manualidades",
		},
		SubAreas: []SubArea{
			{
				Name:     "Diseño gráfico",
				Keywords: []string{"diseño", "logotipos", "ilustración", "carteles", "digital"},
				Roles: []Role{
					{Name: "Diseñador gráfico", Keywords: []string{"logotipos", "marcas", "carteles"}},
					{Name: "Ilustrador", Keywords: []string{"ilustración", "personajes", "cómic"}},
				},
			},
			{
				Name:     "Artes visuales",
				Keywords: []string{"pintura", "escultura", "fotografía", "galería"},
				Roles: []Role{
					{Name: "Fotógrafo", Keywords: []string{"fotografía", "cámara"}},
					{Name: "Artista plástico", Keywords: []string{"pintura", "escultura", "exposiciones"}},
				},
			},
		},
		Sector:         "Industrias creativas",
		EducationLevel: "Universitario",
		Careers:        []string{"Diseño Gráfico", "Artes Visuales", "Diseño de Modas"},
		Skills:         []string{"Creatividad", "Sensibilidad estética", "Manejo de software de diseño", "Observación"},
		StudyPaths:     []string{"Licenciatura en Diseño Gráfico", "Licenciatura en Artes Plásticas", "Técnico en Diseño Digital"},
	},
	{
		Key:   "negocios",
		Label: "Negocios y Administración",
		Keywords: []string{
			"negocio", "empresa", "emprender", "vender", "ventas", "dinero",
			"finanzas", "administración", "contabilidad", "marketing", "clientes",
			"economía", "liderar",
		},
		SubAreas: []SubArea{
			{
				Name:     "Finanzas",
				Keywords: []string{"finanzas", "dinero", "contabilidad", "inversiones", "presupuesto"},
				Roles: []Role{
					{Name: "Contador", Keywords: []string{"contabilidad", "impuestos", "balances"}},
					{Name: "Analista financiero", Keywords: []string{"inversiones", "bolsa", "presupuesto"}},
				},
			},
			{
				Name:     "Emprendimiento y mercadotecnia",
				Keywords: []string{"emprender", "marketing", "vender", "ventas", "marca"},
				Roles: []Role{
					{Name: "Emprendedor", Keywords: []string{"emprender", "propio negocio", "startup"}},
					{Name: "Especialista en marketing", Keywords: []string{"marketing", "publicidad", "campañas"}},
				},
			},
		},
		Sector:         "Comercio y servicios",
		EducationLevel: "Universitario",
		Careers:        []string{"Administración de Empresas", "Contaduría Pública", "Mercadotecnia"},
		Skills:         []string{"Liderazgo", "Negociación", "Análisis numérico", "Organización"},
		StudyPaths:     []string{"Licenciatura en Administración", "Licenciatura en Contaduría", "Técnico en Comercio"},
	},
	{
		Key:   "ciencias",
		Label: "Ciencias",
		Keywords: []string{
			"ciencia", "laboratorio", "experimento", "investigar", "química",
			"física", "biología", "matemáticas", "estrellas", "microscopio",
			"genética", "descubrir",
		},
		SubAreas: []SubArea{
			{
				Name:     "Ciencias de la vida",
				Keywords: []string{"biología", "genética", "células", "organismos"},
				Roles: []Role{
					{Name: "Biólogo", Keywords: []string{"organismos", "especies", "campo"}},
					{Name: "Investigador en genética", Keywords: []string{"genética", "adn"}},
				},
			},
			{
				Name:     "Ciencias exactas",
				Keywords: []string{"física", "química", "matemáticas", "astronomía"},
				Roles: []Role{
					{Name: "Químico", Keywords: []string{"química", "reacciones", "sustancias"}},
					{Name: "Físico", Keywords: []string{"física", "universo", "partículas"}},
				},
			},
		},
		Sector:         "Investigación científica",
		EducationLevel: "Posgrado",
		Careers:        []string{"Biología", "Química", "Física"},
		Skills:         []string{"Método científico", "Curiosidad", "Análisis de datos", "Rigor"},
		StudyPaths:     []string{"Licenciatura en Biología", "Licenciatura en Química", "Maestría en Ciencias"},
	},
	{
		Key:   "ingenieria",
		Label: "Ingeniería",
		Keywords: []string{
			"ingeniería", "construir", "máquinas", "mecánica", "motores",
			"estructuras", "puentes", "planos", "fabricar", "herramientas",
			"energía", "automatización",
		},
		SubAreas: []SubArea{
			{
				Name:     "Ingeniería civil",
				Keywords: []string{"puentes", "edificios", "estructuras", "construir", "planos"},
				Roles: []Role{
					{Name: "Ingeniero civil", Keywords: []string{"obras", "puentes", "carreteras"}},
					{Name: "Arquitecto", Keywords: []string{"edificios", "casas", "espacios"}},
				},
			},
			{
				Name:     "Ingeniería mecánica e industrial",
				Keywords: []string{"máquinas", "motores", "mecánica", "fábrica", "procesos"},
				Roles: []Role{
					{Name: "Ingeniero mecánico", Keywords: []string{"motores", "máquinas", "piezas"}},
					{Name: "Ingeniero industrial", Keywords: []string{"procesos", "producción", "fábrica"}},
				},
			},
		},
		Sector:         "Industria y construcción",
		EducationLevel: "Universitario",
		Careers:        []string{"Ingeniería Civil", "Ingeniería Mecánica", "Ingeniería Industrial"},
		Skills:         []string{"Matemáticas aplicadas", "Diseño técnico", "Gestión de proyectos", "Resolución de problemas"},
		StudyPaths:     []string{"Ingeniería Civil", "Ingeniería Mecatrónica", "Técnico en Mantenimiento Industrial"},
	},
	{
		Key:   "derecho",
		Label: "Derecho y Ciencias Jurídicas",
		Keywords: []string{
			"derecho", "leyes", "abogado", "justicia", "juicio", "tribunal",
			"defender", "debatir", "argumentar", "contratos", "derechos humanos",
		},
		SubAreas: []SubArea{
			{
				Name:     "Litigio",
				Keywords: []string{"juicio", "tribunal", "defender", "abogado"},
				Roles: []Role{
					{Name: "Abogado penalista", Keywords: []string{"penal", "delitos", "defensa"}},
					{Name: "Abogado laboral", Keywords: []string{"trabajadores", "laboral"}},
				},
			},
			{
				Name:     "Derecho corporativo",
				Keywords: []string{"contratos", "empresas", "corporativo", "acuerdos"},
				Roles: []Role{
					{Name: "Abogado corporativo", Keywords: []string{"contratos", "acuerdos"}},
					{Name: "Notario", Keywords: []string{"notaría", "escrituras"}},
				},
			},
		},
		Sector:         "Servicios jurídicos",
		EducationLevel: "Universitario",
		Careers:        []string{"Derecho", "Criminología", "Relaciones Internacionales"},
		Skills:         []string{"Argumentación", "Lectura crítica", "Ética", "Expresión oral"},
		StudyPaths:     []string{"Licenciatura en Derecho", "Licenciatura en Criminología", "Especialidad en Derecho Corporativo"},
	},
	{
		Key:   "comunicacion",
		Label: "Comunicación y Medios",
		Keywords: []string{
			"comunicación", "periodismo", "escribir", "redactar", "noticias",
			"entrevistar", "radio", "televisión", "redes sociales", "publicidad",
			"guiones", "audiovisual",
		},
		SubAreas: []SubArea{
			{
				Name:     "Periodismo",
				Keywords: []string{"periodismo", "noticias", "entrevistar", "reportaje"},
				Roles: []Role{
					{Name: "Reportero", Keywords: []string{"reportaje", "noticias", "calle"}},
					{Name: "Editor", Keywords: []string{"editar", "revisar textos", "revista"}},
				},
			},
			{
				Name:     "Producción audiovisual",
				Keywords: []string{"audiovisual", "videos", "televisión", "radio", "cine"},
				Roles: []Role{
					{Name: "Productor audiovisual", Keywords: []string{"producir", "videos", "grabar"}},
					{Name: "Creador de contenido", Keywords: []string{"redes sociales", "contenido", "youtube"}},
				},
			},
		},
		Sector:         "Medios y comunicación",
		EducationLevel: "Universitario",
		Careers:        []string{"Ciencias de la Comunicación", "Periodismo", "Producción Audiovisual"},
		Skills:         []string{"Redacción", "Expresión oral", "Pensamiento crítico", "Edición multimedia"},
		StudyPaths:     []string{"Licenciatura en Comunicación", "Licenciatura en Periodismo", "Técnico en Producción Audiovisual"},
	},
	{
		Key:   "ciencias_sociales",
		Label: "Ciencias Sociales y Humanidades",
		Keywords: []string{
			"psicología", "sociedad", "historia", "filosofía", "tradiciones",
			"comportamiento", "sociología", "antropología", "idiomas", "literatura",
			"mente humana",
		},
		SubAreas: []SubArea{
			{
				Name:     "Psicología",
				Keywords: []string{"psicología", "mente humana", "emociones", "comportamiento"},
				Roles: []Role{
					{Name: "Psicólogo clínico", Keywords: []string{"terapia", "emociones", "consultorio"}},
					{Name: "Psicólogo organizacional", Keywords: []string{"empresas", "equipos", "recursos humanos"}},
				},
			},
			{
				Name:     "Humanidades",
				Keywords: []string{"historia", "filosofía", "literatura", "idiomas"},
				Roles: []Role{
					{Name: "Historiador", Keywords: []string{"historia", "archivos", "pasado"}},
					{Name: "Traductor", Keywords: []string{"idiomas", "traducir"}},
				},
			},
		},
		Sector:         "Ciencias sociales",
		EducationLevel: "Universitario",
		Careers:        []string{"Psicología", "Sociología", "Historia"},
		Skills:         []string{"Escucha activa", "Análisis crítico", "Investigación cualitativa", "Redacción"},
		StudyPaths:     []string{"Licenciatura en Psicología", "Licenciatura en Sociología", "Licenciatura en Letras"},
	},
	{
		Key:   "deporte",
		Label: "Deporte y Actividad Física",
		Keywords: []string{
			"deporte", "entrena", "fútbol", "ejercicio", "gimnasio", "atleta",
			"competir", "correr", "natación", "entrenador", "moverme",
		},
		SubAreas: []SubArea{
			{
				Name:     "Entrenamiento deportivo",
				Keywords: []string{"entrenar", "entrenador", "equipo", "competir"},
				Roles: []Role{
					{Name: "Entrenador deportivo", Keywords: []string{"equipo", "estrategia", "partidos"}},
					{Name: "Preparador físico", Keywords: []string{"rutinas", "gimnasio", "condición"}},
				},
			},
			{
				Name:     "Gestión deportiva",
				Keywords: []string{"eventos deportivos", "torneos", "club"},
				Roles: []Role{
					{Name: "Gestor deportivo", Keywords: []string{"torneos", "club", "organizar"}},
					{Name: "Árbitro", Keywords: []string{"reglas", "arbitrar"}},
				},
			},
		},
		Sector:         "Deporte y recreación",
		EducationLevel: "Técnico o universitario",
		Careers:        []string{"Ciencias del Deporte", "Educación Física", "Entrenamiento Deportivo"},
		Skills:         []string{"Disciplina", "Trabajo en equipo", "Motivación", "Conocimiento del cuerpo"},
		StudyPaths:     []string{"Licenciatura en Educación Física", "Licenciatura en Ciencias del Deporte", "Certificación de Entrenador"},
	},
	{
		Key:   "medio_ambiente",
		Label: "Medio Ambiente",
		Keywords: []string{
			"naturaleza", "medio ambiente", "ecosistemas", "reciclar", "bosque",
			"océano", "clima", "sustentable", "contaminación", "conservación", "fauna",
		},
		SubAreas: []SubArea{
			{
				Name:     "Conservación",
				Keywords: []string{"conservación", "fauna", "bosque", "océano", "especies"},
				Roles: []Role{
					{Name: "Guardaparques", Keywords: []string{"parques", "reservas"}},
					{Name: "Biólogo de conservación", Keywords: []string{"especies", "fauna"}},
				},
			},
			{
				Name:     "Gestión ambiental",
				Keywords: []string{"reciclar", "contaminación", "sustentable", "residuos"},
				Roles: []Role{
					{Name: "Consultor ambiental", Keywords: []string{"empresas", "normas", "impacto"}},
					{Name: "Gestor de residuos", Keywords: []string{"reciclar", "residuos"}},
				},
			},
		},
		Sector:         "Medio ambiente",
		EducationLevel: "Universitario",
		Careers:        []string{"Ingeniería Ambiental", "Ciencias Ambientales", "Gestión de Recursos Naturales"},
		Skills:         []string{"Conciencia ecológica", "Trabajo de campo", "Análisis de impacto", "Divulgación"},
		StudyPaths:     []string{"Ingeniería Ambiental", "Licenciatura en Ciencias Ambientales", "Técnico en Gestión Ambiental"},
	},
	{
		Key:   "gastronomia",
		Label: "Gastronomía y Turismo",
		Keywords: []string{
			"cocinar", "cocina", "recetas", "gastronomía", "restaurante", "chef",
			"repostería", "viajar", "turismo", "hotel", "sabores",
		},
		SubAreas: []SubArea{
			{
				Name:     "Artes culinarias",
				Keywords: []string{"cocinar", "cocina", "recetas", "chef", "repostería"},
				Roles: []Role{
					{Name: "Chef", Keywords: []string{"restaurante", "platillos", "menú"}},
					{Name: "Repostero", Keywords: []string{"repostería", "pasteles", "postres"}},
				},
			},
			{
				Name:     "Turismo y hotelería",
				Keywords: []string{"viajar", "turismo", "hotel", "turistas"},
				Roles: []Role{
					{Name: "Guía de turistas", Keywords: []string{"guiar", "recorridos", "turistas"}},
					{Name: "Gerente de hotel", Keywords: []string{"hotel", "huéspedes"}},
				},
			},
		},
		Sector:         "Hospitalidad",
		EducationLevel: "Técnico o universitario",
		Careers:        []string{"Gastronomía", "Administración Turística", "Hotelería"},
		Skills:         []string{"Creatividad culinaria", "Servicio al cliente", "Organización", "Trabajo bajo presión"},
		StudyPaths:     []string{"Licenciatura en Gastronomía", "Licenciatura en Turismo", "Técnico en Cocina"},
	},
	{
		Key:   "musica",
		Label: "Música y Artes Escénicas",
		Keywords: []string{
			"música", "cantar", "instrumento", "guitarra", "piano", "bailar",
			"danza", "teatro", "actuar", "escenario", "componer", "banda",
		},
		SubAreas: []SubArea{
			{
				Name:     "Interpretación musical",
				Keywords: []string{"cantar", "instrumento", "guitarra", "piano", "banda", "componer"},
				Roles: []Role{
					{Name: "Músico intérprete", Keywords: []string{"conciertos", "tocar"}},
					{Name: "Productor musical", Keywords: []string{"grabar", "estudio", "mezclar"}},
				},
			},
			{
				Name:     "Artes escénicas",
				Keywords: []string{"teatro", "actuar", "danza", "bailar", "escenario"},
				Roles: []Role{
					{Name: "Actor", Keywords: []string{"actuar", "personajes", "obras"}},
					{Name: "Bailarín", Keywords: []string{"bailar", "danza", "coreografía"}},
				},
			},
		},
		Sector:         "Cultura y entretenimiento",
		EducationLevel: "Técnico o universitario",
		Careers:        []string{"Música", "Artes Escénicas", "Producción Musical"},
		Skills:         []string{"Expresión artística", "Disciplina", "Oído musical", "Trabajo en equipo"},
		StudyPaths:     []string{"Licenciatura en Música", "Licenciatura en Teatro", "Técnico en Producción Musical"},
	},
	{
		Key:   "agro",
		Label: "Agropecuario",
		Keywords: []string{
			"campo", "agricultura", "cultivar", "cosecha", "ganado", "granja",
			"animales", "veterinaria", "sembrar", "huerto",
		},
		SubAreas: []SubArea{
			{
				Name:     "Producción agrícola",
				Keywords: []string{"agricultura", "cultivar", "cosecha", "sembrar", "huerto"},
				Roles: []Role{
					{Name: "Ingeniero agrónomo", Keywords: []string{"suelos", "cultivos", "riego"}},
					{Name: "Productor agrícola", Keywords: []string{"cosecha", "vender productos"}},
				},
			},
			{
				Name:     "Producción animal",
				Keywords: []string{"ganado", "granja", "animales", "veterinaria"},
				Roles: []Role{
					{Name: "Médico veterinario", Keywords: []string{"veterinaria", "mascotas", "curar animales"}},
					{Name: "Zootecnista", Keywords: []string{"ganado", "crianza"}},
				},
			},
		},
		Sector:         "Agropecuario",
		EducationLevel: "Técnico o universitario",
		Careers:        []string{"Agronomía", "Medicina Veterinaria y Zootecnia", "Ingeniería Agroindustrial"},
		Skills:         []string{"Trabajo de campo", "Paciencia", "Conocimiento biológico", "Planificación"},
		StudyPaths:     []string{"Ingeniería Agronómica", "Medicina Veterinaria", "Técnico Agropecuario"},
	},
	{
		Key:   "servicio_social",
		Label: "Servicio Social y Comunidad",
		Keywords: []string{
			"ayudar", "voluntariado", "comunidad", "apoyar", "servicio social",
			"personas vulnerables", "fundación", "solidaridad", "inclusión",
		},
		SubAreas: []SubArea{
			{
				Name:     "Trabajo social",
				Keywords: []string{"familias", "comunidad", "personas vulnerables", "servicio social"},
				Roles: []Role{
					{Name: "Trabajador social", Keywords: []string{"familias", "casos", "apoyo"}},
					{Name: "Promotor comunitario", Keywords: []string{"comunidad", "talleres", "barrio"}},
				},
			},
			{
				Name:     "Organizaciones sin fines de lucro",
				Keywords: []string{"voluntariado", "fundación", "organización", "causas"},
				Roles: []Role{
					{Name: "Coordinador de voluntariado", Keywords: []string{"voluntariado", "voluntarios"}},
					{Name: "Gestor de proyectos sociales", Keywords: []string{"proyectos", "fondos"}},
				},
			},
		},
		Sector:         "Desarrollo social",
		EducationLevel: "Universitario",
		Careers:        []string{"Trabajo Social", "Desarrollo Comunitario", "Gestión de Organizaciones Sociales"},
		Skills:         []string{"Empatía", "Mediación", "Trabajo comunitario", "Gestión de proyectos"},
		StudyPaths:     []string{"Licenciatura en Trabajo Social", "Licenciatura en Desarrollo Comunitario", "Diplomado en Gestión Social"},
	},
	{
		Key:   "seguridad",
		Label: "Seguridad y Defensa",
		Keywords: []string{
			"policía", "fuerzas armadas", "bombero", "rescate", "emergencias",
			"militar", "proteger a la gente", "seguridad pública", "disciplina",
		},
		SubAreas: []SubArea{
			{
				Name:     "Protección civil",
				Keywords: []string{"bombero", "rescate", "emergencias", "desastres"},
				Roles: []Role{
					{Name: "Bombero", Keywords: []string{"incendios", "bombero"}},
					{Name: "Técnico en protección civil", Keywords: []string{"desastres", "prevención"}},
				},
			},
			{
				Name:     "Fuerzas de seguridad",
				Keywords: []string{"policía", "ejército", "militar", "seguridad pública"},
				Roles: []Role{
					{Name: "Policía investigador", Keywords: []string{"investigación", "delitos"}},
					{Name: "Oficial militar", Keywords: []string{"ejército", "marina"}},
				},
			},
		},
		Sector:         "Seguridad pública",
		EducationLevel: "Técnico o universitario",
		Careers:        []string{"Criminología", "Ciencias Policiales", "Protección Civil"},
		Skills:         []string{"Disciplina", "Toma de decisiones", "Condición física", "Trabajo en equipo"},
		StudyPaths:     []string{"Academia de Policía", "Escuela Militar", "Técnico en Protección Civil"},
	},
	{
		Key:   "logistica",
		Label: "Transporte y Logística",
		Keywords: []string{
			"transporte", "logística", "envíos", "almacén", "conducir",
			"aviones", "barcos", "distribución", "rutas", "inventario",
		},
		SubAreas: []SubArea{
			{
				Name:     "Cadena de suministro",
				Keywords: []string{"logística", "almacén", "inventario", "distribución", "envíos"},
				Roles: []Role{
					{Name: "Coordinador logístico", Keywords: []string{"rutas", "envíos", "entregas"}},
					{Name: "Jefe de almacén", Keywords: []string{"almacén", "inventario"}},
				},
			},
			{
				Name:     "Transporte",
				Keywords: []string{"aviones", "barcos", "conducir", "transporte"},
				Roles: []Role{
					{Name: "Piloto aviador", Keywords: []string{"aviones", "volar"}},
					{Name: "Capitán de marina mercante", Keywords: []string{"barcos", "puertos"}},
				},
			},
		},
		Sector:         "Transporte y logística",
		EducationLevel: "Técnico o universitario",
		Careers:        []string{"Ingeniería en Logística", "Comercio Internacional", "Piloto Aviador"},
		Skills:         []string{"Organización", "Planificación", "Resolución de imprevistos", "Manejo de inventarios"},
		StudyPaths:     []string{"Licenciatura en Logística", "Licenciatura en Comercio Internacional", "Escuela de Aviación"},
	},
}
